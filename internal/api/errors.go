package api

import (
	"fmt"

	"github.com/Veraticus/appraise/internal/common"
	"github.com/tidwall/gjson"
)

// Op names a service operation.
type Op string

// Service operations.
const (
	OpPredict           Op = "predict"
	OpFeatureImportance Op = "feature-importance"
	OpModelHealth       Op = "model-health"
)

// Fallback returns the message shown when the service gives no detail.
func (o Op) Fallback() string {
	switch o {
	case OpPredict:
		return "Failed to predict house price"
	case OpFeatureImportance:
		return "Failed to get feature importance"
	case OpModelHealth:
		return "Failed to check model health"
	default:
		return "Request failed"
	}
}

// RequestError is returned for every failed call. Its message is the
// service-supplied detail when there is one, and the operation's fallback otherwise.
type RequestError struct {
	Err        error
	Op         Op
	Detail     string
	StatusCode int
}

func newRequestError(op Op, status int, detail string, cause error) *RequestError {
	return &RequestError{
		Op:         op,
		StatusCode: status,
		Detail:     detail,
		Err:        fmt.Errorf("%w: %s: %w", common.ErrRequestFailed, op, cause),
	}
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Op.Fallback()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// detailFrom extracts a string "detail" field from an error body.
// Non-JSON bodies and non-string details (such as validation error lists) yield "".
func detailFrom(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	detail := gjson.GetBytes(body, "detail")
	if detail.Type != gjson.String {
		return ""
	}
	return detail.String()
}
