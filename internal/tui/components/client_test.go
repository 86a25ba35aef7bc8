package components

import (
	"context"
	"sync"

	"github.com/Veraticus/appraise/internal/api"
	"github.com/Veraticus/appraise/internal/model"
)

// fakeClient is an api.Client that records calls and returns canned results.
type fakeClient struct {
	predictErr    error
	importanceErr error
	healthErr     error
	predicted     []model.HouseFeatures
	prediction    model.PredictionResponse
	importance    model.FeatureImportanceResponse
	health        model.ModelHealthResponse
	mu            sync.Mutex
	importCalls   int
	healthCalls   int
}

var _ api.Client = (*fakeClient)(nil)

func (c *fakeClient) Predict(_ context.Context, features model.HouseFeatures) (model.PredictionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.predicted = append(c.predicted, features)
	if c.predictErr != nil {
		return model.PredictionResponse{}, c.predictErr
	}
	return c.prediction, nil
}

func (c *fakeClient) GetFeatureImportance(context.Context) (model.FeatureImportanceResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.importCalls++
	return c.importance, c.importanceErr
}

func (c *fakeClient) CheckHealth(context.Context) (model.ModelHealthResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.healthCalls++
	return c.health, c.healthErr
}

func (c *fakeClient) predictCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.predicted)
}

func samplePrediction() model.PredictionResponse {
	return model.PredictionResponse{
		PredictedPrice:     350000,
		ConfidenceInterval: model.ConfidenceInterval{Lower: 320000, Upper: 380000},
		ModelUsed:          "random_forest",
		InputFeatures: model.HouseFeatures{
			SquareFootage: 2000,
			Bedrooms:      3,
			Bathrooms:     2,
			Age:           10,
			Garage:        2,
			LocationScore: 7,
		},
	}
}

type emptyError struct{}

func (emptyError) Error() string { return "" }
