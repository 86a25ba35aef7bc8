package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureImportanceResponse_Unmarshal(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		wantEntries Importances
		wantPresent bool
		wantErr     bool
	}{
		{
			name:        "ordered mapping",
			payload:     `{"feature_importance":{"age":0.2,"square_footage":0.5,"bedrooms":0.3},"model_type":"random_forest"}`,
			wantPresent: true,
			wantEntries: Importances{
				{Feature: "age", Weight: 0.2},
				{Feature: "square_footage", Weight: 0.5},
				{Feature: "bedrooms", Weight: 0.3},
			},
		},
		{
			name:        "null mapping",
			payload:     `{"feature_importance":null,"model_type":"linear_regression"}`,
			wantPresent: false,
		},
		{
			name:        "missing mapping",
			payload:     `{"model_type":"linear_regression"}`,
			wantPresent: false,
		},
		{
			name:        "empty mapping",
			payload:     `{"feature_importance":{},"model_type":"random_forest"}`,
			wantPresent: true,
			wantEntries: Importances{},
		},
		{
			name:    "non numeric weight",
			payload: `{"feature_importance":{"age":"high"},"model_type":"random_forest"}`,
			wantErr: true,
		},
		{
			name:    "array instead of object",
			payload: `{"feature_importance":[0.1,0.2],"model_type":"random_forest"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp FeatureImportanceResponse
			err := json.Unmarshal([]byte(tt.payload), &resp)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPresent, resp.HasImportance())
			if tt.wantPresent {
				assert.Equal(t, tt.wantEntries, *resp.FeatureImportance)
			}
		})
	}
}

func TestImportances_MarshalJSON_KeepsOrder(t *testing.T) {
	imp := Importances{
		{Feature: "garage", Weight: 0.1},
		{Feature: "age", Weight: 0.25},
	}

	data, err := json.Marshal(FeatureImportanceResponse{FeatureImportance: &imp, ModelType: "random_forest"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"feature_importance":{"garage":0.1,"age":0.25},"model_type":"random_forest"}`, string(data))
	assert.Contains(t, string(data), `{"garage":0.1,"age":0.25}`)

	data, err = json.Marshal(FeatureImportanceResponse{ModelType: "linear_regression"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"feature_importance":null,"model_type":"linear_regression"}`, string(data))
}

func TestBuildChartData(t *testing.T) {
	t.Run("sorted descending by weight", func(t *testing.T) {
		points := BuildChartData(Importances{
			{Feature: "square_footage", Weight: 0.5},
			{Feature: "bedrooms", Weight: 0.3},
			{Feature: "age", Weight: 0.2},
		})

		require.Len(t, points, 3)
		assert.Equal(t, "square_footage", points[0].OriginalFeature)
		assert.Equal(t, "bedrooms", points[1].OriginalFeature)
		assert.Equal(t, "age", points[2].OriginalFeature)
		assert.Equal(t, "Square Footage", points[0].Feature)
		assert.Equal(t, "Age (years)", points[2].Feature)
	})

	t.Run("unsorted input", func(t *testing.T) {
		points := BuildChartData(Importances{
			{Feature: "age", Weight: 0.2},
			{Feature: "square_footage", Weight: 0.5},
			{Feature: "bedrooms", Weight: 0.3},
		})

		got := make([]string, 0, len(points))
		for _, p := range points {
			got = append(got, p.OriginalFeature)
		}
		assert.Equal(t, []string{"square_footage", "bedrooms", "age"}, got)
	})

	t.Run("ties keep service order", func(t *testing.T) {
		points := BuildChartData(Importances{
			{Feature: "garage", Weight: 0.1},
			{Feature: "bathrooms", Weight: 0.4},
			{Feature: "age", Weight: 0.1},
			{Feature: "bedrooms", Weight: 0.4},
		})

		got := make([]string, 0, len(points))
		for _, p := range points {
			got = append(got, p.OriginalFeature)
		}
		assert.Equal(t, []string{"bathrooms", "bedrooms", "garage", "age"}, got)
	})

	t.Run("unknown feature keeps raw key as label", func(t *testing.T) {
		points := BuildChartData(Importances{{Feature: "lot_size", Weight: 0.9}})

		require.Len(t, points, 1)
		assert.Equal(t, "lot_size", points[0].Feature)
		assert.Equal(t, "lot_size", points[0].OriginalFeature)
	})
}

func TestNewImportanceData(t *testing.T) {
	assert.Nil(t, NewImportanceData(FeatureImportanceResponse{ModelType: "linear_regression"}))

	imp := Importances{{Feature: "age", Weight: 0.2}, {Feature: "garage", Weight: 0.6}}
	data := NewImportanceData(FeatureImportanceResponse{FeatureImportance: &imp, ModelType: "random_forest"})
	require.NotNil(t, data)
	assert.Equal(t, "random_forest", data.ModelType)
	assert.Equal(t, "garage", data.ChartData[0].OriginalFeature)
	assert.InDelta(t, 0.6, data.MaxImportance(), 1e-9)
}
