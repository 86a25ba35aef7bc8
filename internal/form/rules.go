// Package form holds the validation rules for house feature input.
package form

import (
	"math"

	"github.com/Veraticus/appraise/internal/model"
)

const (
	wholeNumberMessage = "Must be a whole number"
	tenthsMessage      = "Use at most one decimal place"

	// stepTolerance absorbs float error in v/step, e.g. 7.1/0.1.
	stepTolerance = 1e-9
)

// Bound is an inclusive limit with the message shown when it is crossed.
type Bound struct {
	Message string
	Value   float64
}

// Rule describes how one feature field is validated.
type Rule struct {
	Field    model.FeatureKey
	Required string
	Min      Bound
	Max      Bound
	// Step is the granularity accepted values must land on.
	Step     Bound
}

// Check returns the message for the first constraint v violates, or "" when v is valid.
// Bounds are checked before the step.
func (r Rule) Check(v float64) string {
	if v < r.Min.Value {
		return r.Min.Message
	}
	if v > r.Max.Value {
		return r.Max.Message
	}
	if !onStep(v, r.Step.Value) {
		return r.Step.Message
	}
	return ""
}

func onStep(v, step float64) bool {
	if step <= 0 {
		return true
	}
	q := v / step
	return math.Abs(q-math.Round(q)) < stepTolerance
}

var rules = []Rule{
	{
		Field:    model.FeatureSquareFootage,
		Required: "Square footage is required",
		Min:      Bound{Value: 100, Message: "Minimum 100 sq ft"},
		Max:      Bound{Value: 10000, Message: "Maximum 10,000 sq ft"},
		Step:     Bound{Value: 1, Message: wholeNumberMessage},
	},
	{
		Field:    model.FeatureBedrooms,
		Required: "Number of bedrooms is required",
		Min:      Bound{Value: 1, Message: "Minimum 1 bedroom"},
		Max:      Bound{Value: 10, Message: "Maximum 10 bedrooms"},
		Step:     Bound{Value: 1, Message: wholeNumberMessage},
	},
	{
		Field:    model.FeatureBathrooms,
		Required: "Number of bathrooms is required",
		Min:      Bound{Value: 1, Message: "Minimum 1 bathroom"},
		Max:      Bound{Value: 10, Message: "Maximum 10 bathrooms"},
		Step:     Bound{Value: 1, Message: wholeNumberMessage},
	},
	{
		Field:    model.FeatureAge,
		Required: "Age is required",
		Min:      Bound{Value: 0, Message: "Age cannot be negative"},
		Max:      Bound{Value: 200, Message: "Maximum 200 years"},
		Step:     Bound{Value: 1, Message: wholeNumberMessage},
	},
	{
		Field:    model.FeatureGarage,
		Required: "Garage spaces is required",
		Min:      Bound{Value: 0, Message: "Minimum 0 garage spaces"},
		Max:      Bound{Value: 5, Message: "Maximum 5 garage spaces"},
		Step:     Bound{Value: 1, Message: wholeNumberMessage},
	},
	{
		Field:    model.FeatureLocationScore,
		Required: "Location score is required",
		Min:      Bound{Value: 1, Message: "Minimum score is 1"},
		Max:      Bound{Value: 10, Message: "Maximum score is 10"},
		Step:     Bound{Value: 0.1, Message: tenthsMessage},
	},
}

// Rules returns the validation table in form order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// RuleFor returns the rule for a field.
func RuleFor(field model.FeatureKey) (Rule, bool) {
	for _, r := range rules {
		if r.Field == field {
			return r, true
		}
	}
	return Rule{}, false
}

// Defaults returns the values the form starts with.
func Defaults() model.HouseFeatures {
	return model.HouseFeatures{
		SquareFootage: 2000,
		Bedrooms:      3,
		Bathrooms:     2,
		Age:           10,
		Garage:        2,
		LocationScore: 7,
	}
}
