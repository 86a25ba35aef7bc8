package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
)

// ImportanceEntry is the weight of a single feature as reported by the service.
type ImportanceEntry struct {
	Feature string
	Weight  float64
}

// Importances is a feature-to-weight mapping that keeps the order the service sent it in.
type Importances []ImportanceEntry

// UnmarshalJSON decodes a JSON object, preserving key order.
func (imp *Importances) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid feature importance payload")
	}

	result := gjson.ParseBytes(data)
	if result.Type == gjson.Null {
		*imp = nil
		return nil
	}
	if !result.IsObject() {
		return fmt.Errorf("feature importance must be an object, got %s", result.Type)
	}

	entries := Importances{}
	var decodeErr error
	result.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			decodeErr = fmt.Errorf("feature importance for %q is not a number", key.String())
			return false
		}
		entries = append(entries, ImportanceEntry{Feature: key.String(), Weight: value.Float()})
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}

	*imp = entries
	return nil
}

// MarshalJSON encodes the mapping as a JSON object in its current order.
func (imp Importances) MarshalJSON() ([]byte, error) {
	if imp == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range imp {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Feature)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Weight)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FeatureImportanceResponse carries per-feature weights for the active model.
// FeatureImportance is nil when the model type does not expose importances.
type FeatureImportanceResponse struct {
	FeatureImportance *Importances `json:"feature_importance"`
	ModelType         string       `json:"model_type"`
}

// HasImportance reports whether the service returned a mapping at all.
func (r FeatureImportanceResponse) HasImportance() bool {
	return r.FeatureImportance != nil
}

// ChartDataPoint is one bar of the importance chart.
type ChartDataPoint struct {
	Feature         string
	OriginalFeature string
	Importance      float64
}

// ImportanceData is the chart-ready form of a FeatureImportanceResponse.
type ImportanceData struct {
	ModelType string
	ChartData []ChartDataPoint
}

// BuildChartData labels each feature and orders the points by weight, highest first.
// Equal weights keep the order the service sent them in.
func BuildChartData(imp Importances) []ChartDataPoint {
	points := make([]ChartDataPoint, 0, len(imp))
	for _, entry := range imp {
		points = append(points, ChartDataPoint{
			Feature:         Label(FeatureKey(entry.Feature)),
			Importance:      entry.Weight,
			OriginalFeature: entry.Feature,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Importance > points[j].Importance
	})

	return points
}

// NewImportanceData converts a response into chart data. It returns nil when the
// response carries no mapping.
func NewImportanceData(resp FeatureImportanceResponse) *ImportanceData {
	if !resp.HasImportance() {
		return nil
	}
	return &ImportanceData{
		ChartData: BuildChartData(*resp.FeatureImportance),
		ModelType: resp.ModelType,
	}
}

// MaxImportance returns the largest weight in the chart, or 0 when empty.
func (d ImportanceData) MaxImportance() float64 {
	maxWeight := 0.0
	for _, p := range d.ChartData {
		if p.Importance > maxWeight {
			maxWeight = p.Importance
		}
	}
	return maxWeight
}
