package components

import "github.com/Veraticus/appraise/internal/model"

// LoadingMsg reports that a prediction request started or finished.
type LoadingMsg struct {
	Loading bool
}

// PredictionSettledMsg carries the outcome of a prediction request back to the form.
type PredictionSettledMsg struct {
	Err      error
	Response model.PredictionResponse
}

// PredictionReceivedMsg announces a successful prediction.
type PredictionReceivedMsg struct {
	Response model.PredictionResponse
}

// PredictionErrorMsg announces a failed prediction with a displayable message.
type PredictionErrorMsg struct {
	Message string
}

// ImportanceLoadedMsg carries the outcome of the feature importance request.
type ImportanceLoadedMsg struct {
	Err      error
	Response model.FeatureImportanceResponse
}
