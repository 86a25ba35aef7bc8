// Package model defines the data shapes exchanged with the prediction service.
package model

// FeatureKey identifies one structural attribute of a house.
type FeatureKey string

// House feature keys, matching the wire names used by the prediction service.
const (
	FeatureSquareFootage FeatureKey = "square_footage"
	FeatureBedrooms      FeatureKey = "bedrooms"
	FeatureBathrooms     FeatureKey = "bathrooms"
	FeatureAge           FeatureKey = "age"
	FeatureGarage        FeatureKey = "garage"
	FeatureLocationScore FeatureKey = "location_score"
)

// FeatureOrder is the canonical order features are entered and displayed in.
var FeatureOrder = []FeatureKey{
	FeatureSquareFootage,
	FeatureBedrooms,
	FeatureBathrooms,
	FeatureAge,
	FeatureGarage,
	FeatureLocationScore,
}

// FeatureLabels maps feature keys to human readable labels.
var FeatureLabels = map[FeatureKey]string{
	FeatureSquareFootage: "Square Footage",
	FeatureBedrooms:      "Bedrooms",
	FeatureBathrooms:     "Bathrooms",
	FeatureAge:           "Age (years)",
	FeatureGarage:        "Garage Spaces",
	FeatureLocationScore: "Location Score (1-10)",
}

// Label returns the display label for a feature, or the raw key if it is unknown.
func Label(key FeatureKey) string {
	if label, ok := FeatureLabels[key]; ok {
		return label
	}
	return string(key)
}

// HouseFeatures holds the inputs for a single prediction.
type HouseFeatures struct {
	SquareFootage float64 `json:"square_footage"`
	Bedrooms      float64 `json:"bedrooms"`
	Bathrooms     float64 `json:"bathrooms"`
	Age           float64 `json:"age"`
	Garage        float64 `json:"garage"`
	LocationScore float64 `json:"location_score"`
}

// FeatureValue pairs a feature key with its value.
type FeatureValue struct {
	Key   FeatureKey
	Value float64
}

// Value returns the value of the given feature and whether the key is known.
func (h HouseFeatures) Value(key FeatureKey) (float64, bool) {
	switch key {
	case FeatureSquareFootage:
		return h.SquareFootage, true
	case FeatureBedrooms:
		return h.Bedrooms, true
	case FeatureBathrooms:
		return h.Bathrooms, true
	case FeatureAge:
		return h.Age, true
	case FeatureGarage:
		return h.Garage, true
	case FeatureLocationScore:
		return h.LocationScore, true
	default:
		return 0, false
	}
}

// Set assigns the value of the given feature. Unknown keys are ignored and reported as false.
func (h *HouseFeatures) Set(key FeatureKey, value float64) bool {
	switch key {
	case FeatureSquareFootage:
		h.SquareFootage = value
	case FeatureBedrooms:
		h.Bedrooms = value
	case FeatureBathrooms:
		h.Bathrooms = value
	case FeatureAge:
		h.Age = value
	case FeatureGarage:
		h.Garage = value
	case FeatureLocationScore:
		h.LocationScore = value
	default:
		return false
	}
	return true
}

// Entries returns all features in canonical order.
func (h HouseFeatures) Entries() []FeatureValue {
	entries := make([]FeatureValue, 0, len(FeatureOrder))
	for _, key := range FeatureOrder {
		v, _ := h.Value(key)
		entries = append(entries, FeatureValue{Key: key, Value: v})
	}
	return entries
}
