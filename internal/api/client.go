// Package api is the client for the house price prediction service.
// Every call issues exactly one HTTP request; there is no retry, caching or
// de-duplication, and all failures surface as *RequestError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/google/uuid"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Service endpoints.
const (
	PredictPath           = "/api/v1/predict"
	FeatureImportancePath = "/api/v1/feature-importance"
	ModelHealthPath       = "/api/v1/model-health"
)

// RequestIDHeader carries a per-request id for correlating client and server logs.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Client defines the operations offered by the prediction service.
type Client interface {
	Predict(ctx context.Context, features model.HouseFeatures) (model.PredictionResponse, error)
	GetFeatureImportance(ctx context.Context) (model.FeatureImportanceResponse, error)
	CheckHealth(ctx context.Context) (model.ModelHealthResponse, error)
}

// Config configures an HTTPClient.
type Config struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
}

// HTTPClient talks to the prediction service over JSON/HTTP.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewClient creates a client for the service at cfg.BaseURL.
func NewClient(cfg Config) (*HTTPClient, error) {
	rawURL := cfg.BaseURL
	if rawURL == "" {
		rawURL = DefaultBaseURL
	}

	baseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base URL %q: %w", common.ErrInvalidConfig, rawURL, err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL %q must use http or https", common.ErrInvalidConfig, rawURL)
	}
	if baseURL.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q has no host", common.ErrInvalidConfig, rawURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the service address the client is bound to.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL.String()
}

// Predict requests a price prediction for the given features.
func (c *HTTPClient) Predict(ctx context.Context, features model.HouseFeatures) (model.PredictionResponse, error) {
	var resp model.PredictionResponse
	body := model.PredictionRequest{HouseFeatures: features}
	if err := c.do(ctx, OpPredict, http.MethodPost, PredictPath, body, &resp); err != nil {
		return model.PredictionResponse{}, err
	}
	return resp, nil
}

// GetFeatureImportance fetches per-feature weights for the active model.
func (c *HTTPClient) GetFeatureImportance(ctx context.Context) (model.FeatureImportanceResponse, error) {
	var resp model.FeatureImportanceResponse
	if err := c.do(ctx, OpFeatureImportance, http.MethodGet, FeatureImportancePath, nil, &resp); err != nil {
		return model.FeatureImportanceResponse{}, err
	}
	return resp, nil
}

// CheckHealth reports whether the service has a model loaded.
func (c *HTTPClient) CheckHealth(ctx context.Context) (model.ModelHealthResponse, error) {
	var resp model.ModelHealthResponse
	if err := c.do(ctx, OpModelHealth, http.MethodGet, ModelHealthPath, nil, &resp); err != nil {
		return model.ModelHealthResponse{}, err
	}
	return resp, nil
}

func (c *HTTPClient) do(ctx context.Context, op Op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return newRequestError(op, 0, "", fmt.Errorf("failed to marshal request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return newRequestError(op, 0, "", fmt.Errorf("failed to create request: %w", err))
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	fields := common.Fields{
		"op":         string(op),
		"method":     method,
		"url":        endpoint.String(),
		"request_id": requestID,
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	fields["duration"] = time.Since(start)
	if err != nil {
		common.LogError(err, "prediction service unreachable", fields)
		return newRequestError(op, 0, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	fields["status"] = resp.StatusCode

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		common.LogError(err, "failed to read response", fields)
		return newRequestError(op, resp.StatusCode, "", fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := detailFrom(data)
		reqErr := newRequestError(op, resp.StatusCode, detail, fmt.Errorf("unexpected status %d", resp.StatusCode))
		common.LogError(reqErr, "prediction service returned an error", fields)
		return reqErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		common.LogError(err, "failed to decode response", fields)
		return newRequestError(op, resp.StatusCode, "", fmt.Errorf("failed to decode response: %w", err))
	}

	common.LogDebug("prediction service request completed", fields)
	return nil
}
