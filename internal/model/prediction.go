package model

// PredictionRequest is the body sent to the predict endpoint.
type PredictionRequest struct {
	HouseFeatures HouseFeatures `json:"house_features"`
}

// ConfidenceInterval bounds a predicted price.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// PredictionResponse is the result of a single prediction.
type PredictionResponse struct {
	ModelUsed          string             `json:"model_used"`
	InputFeatures      HouseFeatures      `json:"input_features"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	PredictedPrice     float64            `json:"predicted_price"`
}

// InRange reports whether the predicted price lies inside its confidence interval.
// The service is expected to guarantee this; clients only use it for display hints.
func (p PredictionResponse) InRange() bool {
	return p.ConfidenceInterval.Lower <= p.PredictedPrice &&
		p.PredictedPrice <= p.ConfidenceInterval.Upper
}

// ModelHealthResponse reports whether the service has a model ready.
type ModelHealthResponse struct {
	ModelType   *string `json:"model_type"`
	Status      string  `json:"status"`
	ModelLoaded bool    `json:"model_loaded"`
}

// ModelTypeOrEmpty returns the model type, or "" when the service reports none.
func (h ModelHealthResponse) ModelTypeOrEmpty() string {
	if h.ModelType == nil {
		return ""
	}
	return *h.ModelType
}
