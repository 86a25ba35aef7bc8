package format

import (
	"math"
	"testing"

	"github.com/Veraticus/appraise/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		want  string
		value float64
	}{
		{value: 350000, want: "$350,000"},
		{value: 320000, want: "$320,000"},
		{value: 1234567.89, want: "$1,234,568"},
		{value: 999.49, want: "$999"},
		{value: 999.5, want: "$1,000"},
		{value: 0, want: "$0"},
		{value: -1234.4, want: "-$1,234"},
		{value: -0.4, want: "$0"},
		{value: 1e19, want: "$10,000,000,000,000,000,000"},
		{value: math.Inf(1), want: NotAvailable},
		{value: math.NaN(), want: NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(tt.value))
		})
	}
}

func TestRange(t *testing.T) {
	assert.Equal(t, "$320,000 - $380,000", Range(model.ConfidenceInterval{Lower: 320000, Upper: 380000}))
}

func TestFeatureValue(t *testing.T) {
	tests := []struct {
		key   model.FeatureKey
		want  string
		value float64
	}{
		{key: model.FeatureLocationScore, value: 7, want: "7.0"},
		{key: model.FeatureLocationScore, value: 8.26, want: "8.3"},
		{key: model.FeatureSquareFootage, value: 2000, want: "2000 sq ft"},
		{key: model.FeatureSquareFootage, value: 1850.5, want: "1850.5 sq ft"},
		{key: model.FeatureAge, value: 10, want: "10 years"},
		{key: model.FeatureBedrooms, value: 3, want: "3"},
		{key: model.FeatureBathrooms, value: 2, want: "2"},
		{key: model.FeatureGarage, value: 2, want: "2"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key)+"/"+tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FeatureValue(tt.key, tt.value))
		})
	}
}

func TestModelLabel(t *testing.T) {
	assert.Equal(t, "RANDOM FOREST", ModelLabel("random_forest"))
	assert.Equal(t, "LINEAR REGRESSION", ModelLabel("linear_regression"))
	assert.Equal(t, "GRADIENT BOOSTED TREES", ModelLabel("gradient_boosted_trees"))
	assert.Equal(t, "UNKNOWN", ModelLabel("unknown"))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "50%", Percent(0.5, 0))
	assert.Equal(t, "50.0%", Percent(0.5, 1))
	assert.Equal(t, "12.3%", Percent(0.1234, 1))
	assert.Equal(t, "0%", Percent(0, 0))
}
