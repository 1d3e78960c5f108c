package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/unitask/unitask-api/internal/embedding"
	"github.com/unitask/unitask-api/internal/insights"
	"github.com/unitask/unitask-api/internal/ml"
	"github.com/unitask/unitask-api/internal/validation"
	"go.uber.org/zap"
)

const (
	// MaxUploadSize caps the uploaded CSV size (8MB)
	MaxUploadSize int64 = 8 << 20
	// uploadFieldName is the multipart form field carrying the CSV
	uploadFieldName = "file"
)

// InsightsHandler serves the AI Insights view: dataset upload/analysis and
// the free-text prediction box. The latest analysis is held in memory and
// replaced wholesale by the next upload.
type InsightsHandler struct {
	service *insights.Service
	logger  *zap.Logger

	mu       sync.RWMutex
	analysis *insights.Analysis
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(service *insights.Service, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{service: service, logger: logger}
}

// RegisterRoutes registers insight routes on the given router.
// The router should already carry the /insights prefix.
func (h *InsightsHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/analyze", h.Analyze).Methods("POST")
	r.HandleFunc("/predict", h.Predict).Methods("POST")
}

// AnalyzeResponse carries the classification report and confusion matrix
// for the uploaded dataset.
type AnalyzeResponse struct {
	RowsUsed         int        `json:"rows_used"`
	Classes          []string   `json:"classes"`
	Report           *ml.Report `json:"report"`
	ConfusionMatrix  [][]int    `json:"confusion_matrix"`
	BaselineAccuracy float64    `json:"baseline_accuracy"`
}

// Analyze accepts a multipart CSV upload and runs the full training
// pipeline. Blocks until training completes.
func (h *InsightsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Expected multipart form with a CSV file")
		return
	}

	file, _, err := r.FormFile(uploadFieldName)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Missing 'file' upload field")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	rows, err := insights.ParseTrainingCSV(file)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	analysis, err := h.service.Analyze(r.Context(), rows)
	if err != nil {
		h.logger.Error("analysis_failed",
			zap.Int("rows", len(rows)),
			zap.Error(err),
		)
		status, errorType := analyzeErrorStatus(err)
		respondJSONError(w, status, errorType, err.Error())
		return
	}

	h.mu.Lock()
	h.analysis = analysis
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, AnalyzeResponse{
		RowsUsed:         len(analysis.Rows),
		Classes:          analysis.Encoder.Classes(),
		Report:           analysis.Report,
		ConfusionMatrix:  analysis.Confusion,
		BaselineAccuracy: analysis.BaselineAccuracy,
	})
}

// PredictRequest is the free-text prediction box input
type PredictRequest struct {
	Description string `json:"description" validate:"required,min=1,max=10000"`
}

// Predict classifies a new description using the latest analysis
func (h *InsightsHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	if err := validation.Validate.Struct(req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	h.mu.RLock()
	analysis := h.analysis
	h.mu.RUnlock()
	if analysis == nil {
		respondJSONError(w, http.StatusConflict, "Conflict", "No analysis available; upload a dataset first")
		return
	}

	prediction, err := h.service.Predict(r.Context(), analysis, req.Description)
	if err != nil {
		h.logger.Error("prediction_failed", zap.Error(err))
		status, errorType := analyzeErrorStatus(err)
		respondJSONError(w, status, errorType, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, prediction)
}

// analyzeErrorStatus maps pipeline failures to HTTP statuses: provider
// unavailable is 503, embedding transport failures are 502, degenerate
// datasets are 422.
func analyzeErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, embedding.ErrNoProvider):
		return http.StatusServiceUnavailable, "Service Unavailable"
	case errors.Is(err, ml.ErrTooFewClasses):
		return http.StatusUnprocessableEntity, "Unprocessable Entity"
	case errors.Is(err, insights.ErrNoUsableRows):
		return http.StatusBadRequest, "Bad Request"
	}

	var embedErr *embedding.RequestError
	if errors.As(err, &embedErr) {
		return http.StatusBadGateway, "Bad Gateway"
	}

	return http.StatusUnprocessableEntity, "Unprocessable Entity"
}
