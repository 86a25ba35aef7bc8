package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/model"
)

// InvalidNumberMessage is shown when a field does not parse as a number.
const InvalidNumberMessage = "Please enter a valid number"

// Errors maps each failing field to its message.
type Errors map[model.FeatureKey]string

// HasErrors reports whether any field failed.
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// First returns the first failing field in form order.
func (e Errors) First() (model.FeatureKey, string, bool) {
	for _, key := range model.FeatureOrder {
		if msg, ok := e[key]; ok {
			return key, msg, true
		}
	}
	return "", "", false
}

// Err converts the errors into a single error wrapping common.ErrValidation, or nil.
func (e Errors) Err() error {
	key, msg, ok := e.First()
	if !ok {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", common.ErrValidation, key, msg)
}

// ValidateField parses and checks a raw input value against a rule.
// It returns the parsed value and "" on success, or the failure message.
func ValidateField(rule Rule, raw string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, rule.Required
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, InvalidNumberMessage
	}

	if msg := rule.Check(v); msg != "" {
		return v, msg
	}
	return v, ""
}

// Validate checks every field and builds the features when all of them pass.
// Missing keys count as blank input.
func Validate(values map[model.FeatureKey]string) (model.HouseFeatures, Errors) {
	var features model.HouseFeatures
	errs := Errors{}

	for _, rule := range rules {
		v, msg := ValidateField(rule, values[rule.Field])
		if msg != "" {
			errs[rule.Field] = msg
			continue
		}
		features.Set(rule.Field, v)
	}

	if errs.HasErrors() {
		return model.HouseFeatures{}, errs
	}
	return features, nil
}

// ValidateFeatures checks already-numeric features, such as a decoded request body.
func ValidateFeatures(features model.HouseFeatures) Errors {
	errs := Errors{}
	for _, rule := range rules {
		v, _ := features.Value(rule.Field)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs[rule.Field] = InvalidNumberMessage
			continue
		}
		if msg := rule.Check(v); msg != "" {
			errs[rule.Field] = msg
		}
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// FormatInput renders a value the way it is pre-filled into an input.
func FormatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DefaultValues returns the default inputs as strings keyed by field.
func DefaultValues() map[model.FeatureKey]string {
	defaults := Defaults()
	values := make(map[model.FeatureKey]string, len(model.FeatureOrder))
	for _, entry := range defaults.Entries() {
		values[entry.Key] = FormatInput(entry.Value)
	}
	return values
}
