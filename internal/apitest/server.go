// Package apitest provides an in-process stand-in for the prediction service.
// It backs the client tests and the demo command; it does not train or run a real model.
package apitest

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Veraticus/appraise/internal/form"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Model types the fake service can pretend to run.
const (
	ModelRandomForest     = "random_forest"
	ModelLinearRegression = "linear_regression"
)

// PredictFunc computes a prediction for a set of features.
type PredictFunc func(model.HouseFeatures) model.PredictionResponse

// Failure describes a canned error response for one endpoint.
type Failure struct {
	// Detail is omitted from the body when empty.
	Detail string
	Status int
}

// Server is a configurable fake prediction service.
type Server struct {
	predict       PredictFunc
	importance    *model.Importances
	failures      map[string]Failure
	calls         map[string]int
	lastFeatures  *model.HouseFeatures
	modelType     string
	mu            sync.Mutex
	loaded        bool
	importanceSet bool
}

// Option configures a Server.
type Option func(*Server)

// WithModelType sets the model type the server reports.
func WithModelType(modelType string) Option {
	return func(s *Server) {
		s.modelType = modelType
	}
}

// WithLoaded sets whether the server reports a loaded model.
func WithLoaded(loaded bool) Option {
	return func(s *Server) {
		s.loaded = loaded
	}
}

// WithImportance overrides the feature importance mapping. Nil means "not available".
func WithImportance(imp *model.Importances) Option {
	return func(s *Server) {
		s.importance = imp
		s.importanceSet = true
	}
}

// WithPredictFunc overrides how predictions are computed.
func WithPredictFunc(fn PredictFunc) Option {
	return func(s *Server) {
		s.predict = fn
	}
}

// New creates a fake service running a loaded random forest.
func New(opts ...Option) *Server {
	s := &Server{
		modelType: ModelRandomForest,
		loaded:    true,
		failures:  make(map[string]Failure),
		calls:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.predict == nil {
		modelType := s.modelType
		s.predict = func(f model.HouseFeatures) model.PredictionResponse {
			return Estimate(f, modelType)
		}
	}
	if !s.importanceSet && s.modelType == ModelRandomForest {
		imp := DefaultImportances()
		s.importance = &imp
	}
	return s
}

// NewTestServer starts s behind an httptest server that is closed when the test ends.
func NewTestServer(t testing.TB, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()

	s := New(opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

// Handler returns the service routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.count)
	r.Use(requestLogger)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "House Price Prediction API"})
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/predict", s.handlePredict)
		r.Get("/feature-importance", s.handleFeatureImportance)
		r.Get("/model-health", s.handleModelHealth)
	})

	return r
}

// Fail makes every request to path answer with the given failure.
func (s *Server) Fail(path string, failure Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure
}

// Recover clears a failure previously set with Fail.
func (s *Server) Recover(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, path)
}

// SetLoaded flips whether the model is reported as loaded.
func (s *Server) SetLoaded(loaded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = loaded
}

// Calls returns how many requests reached path.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// LastFeatures returns the features of the most recent accepted prediction request.
func (s *Server) LastFeatures() (model.HouseFeatures, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastFeatures == nil {
		return model.HouseFeatures{}, false
	}
	return *s.lastFeatures, true
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.URL.Path]++
		failure, failing := s.failures[r.URL.Path]
		s.mu.Unlock()

		if failing {
			writeFailure(w, failure)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req model.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationDetail("body", "invalid JSON body"))
		return
	}

	if errs := form.ValidateFeatures(req.HouseFeatures); errs.HasErrors() {
		field, msg, _ := errs.First()
		writeJSON(w, http.StatusUnprocessableEntity, validationDetail(string(field), msg))
		return
	}

	s.mu.Lock()
	loaded := s.loaded
	predict := s.predict
	if loaded {
		features := req.HouseFeatures
		s.lastFeatures = &features
	}
	s.mu.Unlock()

	if !loaded {
		writeFailure(w, Failure{Status: http.StatusInternalServerError, Detail: "Model not loaded. Please train the model first."})
		return
	}

	writeJSON(w, http.StatusOK, predict(req.HouseFeatures))
}

func (s *Server) handleFeatureImportance(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	resp := model.FeatureImportanceResponse{
		FeatureImportance: s.importance,
		ModelType:         s.modelType,
	}
	if !s.loaded {
		resp = model.FeatureImportanceResponse{ModelType: "unknown"}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleModelHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := model.ModelHealthResponse{
		Status:      "model_not_loaded",
		ModelLoaded: s.loaded,
	}
	if s.loaded {
		modelType := s.modelType
		resp.Status = "healthy"
		resp.ModelType = &modelType
	}
	writeJSON(w, http.StatusOK, resp)
}

// Estimate is a deterministic stand-in for the real model.
func Estimate(f model.HouseFeatures, modelType string) model.PredictionResponse {
	price := 50000 +
		f.SquareFootage*120 +
		f.Bedrooms*10000 +
		f.Bathrooms*15000 -
		f.Age*800 +
		f.Garage*7500 +
		f.LocationScore*12000
	price = math.Max(price, 25000)
	spread := price * 0.0857

	return model.PredictionResponse{
		PredictedPrice: math.Round(price),
		ConfidenceInterval: model.ConfidenceInterval{
			Lower: math.Round(price - spread),
			Upper: math.Round(price + spread),
		},
		ModelUsed:     modelType,
		InputFeatures: f,
	}
}

// DefaultImportances returns the weights reported by the fake random forest.
func DefaultImportances() model.Importances {
	return model.Importances{
		{Feature: string(model.FeatureSquareFootage), Weight: 0.46},
		{Feature: string(model.FeatureLocationScore), Weight: 0.21},
		{Feature: string(model.FeatureAge), Weight: 0.12},
		{Feature: string(model.FeatureBathrooms), Weight: 0.09},
		{Feature: string(model.FeatureBedrooms), Weight: 0.08},
		{Feature: string(model.FeatureGarage), Weight: 0.04},
	}
}

func validationDetail(field, msg string) map[string]any {
	return map[string]any{
		"detail": []map[string]any{
			{"loc": []string{"body", "house_features", field}, "msg": msg, "type": "value_error"},
		},
	}
}

func writeFailure(w http.ResponseWriter, failure Failure) {
	status := failure.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if failure.Detail == "" {
		writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
		return
	}
	writeJSON(w, status, map[string]string{"detail": failure.Detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("fake service request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-ID"),
			"chi_request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r)
	})
}
