// Package format renders prediction values for display.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/appraise/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// NotAvailable stands in for amounts that are not finite.
const NotAvailable = "N/A"

// Currency formats v as whole US dollars, e.g. "$350,000".
func Currency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	// Rounded in float64 so amounts past the int64 range keep their digits.
	rounded := math.Round(v)
	if rounded < 0 {
		return "-$" + printer.Sprintf("%.0f", -rounded)
	}
	return "$" + printer.Sprintf("%.0f", rounded)
}

// Range formats a confidence interval as "lower - upper".
func Range(ci model.ConfidenceInterval) string {
	return Currency(ci.Lower) + " - " + Currency(ci.Upper)
}

// Number formats v in its shortest decimal form ("3", "2.5").
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FeatureValue formats an input feature value for display.
func FeatureValue(key model.FeatureKey, v float64) string {
	switch key {
	case model.FeatureLocationScore:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case model.FeatureSquareFootage:
		return Number(v) + " sq ft"
	case model.FeatureAge:
		return Number(v) + " years"
	default:
		return Number(v)
	}
}

// ModelLabel turns a model identifier such as "random_forest" into "RANDOM FOREST".
func ModelLabel(modelType string) string {
	return strings.ToUpper(strings.ReplaceAll(modelType, "_", " "))
}

// Percent formats a 0..1 weight as a percentage with the given number of decimals.
func Percent(weight float64, decimals int) string {
	return strconv.FormatFloat(weight*100, 'f', decimals, 64) + "%"
}
