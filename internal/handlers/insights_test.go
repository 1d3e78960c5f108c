package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/unitask/unitask-api/internal/embedding"
	"github.com/unitask/unitask-api/internal/insights"
	"go.uber.org/zap"
)

// keywordEmbedder produces separable vectors from keyword presence so the
// pipeline trains without a network dependency.
type keywordEmbedder struct{}

func (keywordEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		vec := make([]float64, 4)
		if strings.Contains(t, "urgent") {
			vec[0] = 1
		} else {
			vec[1] = 1
		}
		out[i] = vec
	}
	return out, nil
}

func (keywordEmbedder) Dimensions() int { return 4 }

const trainingCSV = `description,priority,assigned_to
Urgent server outage needs fix,High,alice
Urgent payment failure,High,bob
Urgent login regression,High,bob
Urgent data loss report,High,carol
Urgent security patch,High,carol
Tidy changelog formatting,Low,bob
Rename internal helper,Low,carol
Update dependency pins,Low,bob
Adjust README wording,Low,carol
Archive stale branches,Low,bob
`

func newInsightsRouter(provider embedding.Provider) *mux.Router {
	service := insights.NewService(provider, zap.NewNop(),
		insights.WithTrials(2), insights.WithTuneSeed(42))
	h := NewInsightsHandler(service, zap.NewNop())
	r := mux.NewRouter()
	h.RegisterRoutes(r.PathPrefix("/api/v1/insights").Subrouter())
	return r
}

func uploadCSV(t *testing.T, router *mux.Router, csvData string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "training.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(csvData)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/insights/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeUpload(t *testing.T) {
	t.Parallel()

	router := newInsightsRouter(keywordEmbedder{})
	rec := uploadCSV(t, router, trainingCSV)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AnalyzeResponse
	decodeData(t, rec, &resp)
	if resp.RowsUsed != 10 {
		t.Errorf("expected 10 rows used, got %d", resp.RowsUsed)
	}
	if len(resp.Classes) != 2 || resp.Classes[0] != "High" || resp.Classes[1] != "Low" {
		t.Errorf("unexpected classes: %v", resp.Classes)
	}
	if len(resp.Report.PerClass) != 2 {
		t.Errorf("expected 2 class rows in report, got %d", len(resp.Report.PerClass))
	}
	if len(resp.ConfusionMatrix) != 2 || len(resp.ConfusionMatrix[0]) != 2 {
		t.Errorf("expected 2x2 confusion matrix, got %v", resp.ConfusionMatrix)
	}
}

func TestAnalyzeUploadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		csv  string
		want int
	}{
		{"missing columns", "description,priority\nFix bug,High", http.StatusBadRequest},
		{"no usable rows", "description,priority,assigned_to\n,,\n", http.StatusBadRequest},
		{"single class", "description,priority,assigned_to\nA task,High,alice\nB task,High,bob\n", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newInsightsRouter(keywordEmbedder{})
			rec := uploadCSV(t, router, tt.csv)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAnalyzeWithoutProvider(t *testing.T) {
	t.Parallel()

	router := newInsightsRouter(nil)
	rec := uploadCSV(t, router, trainingCSV)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeRejectsNonMultipart(t *testing.T) {
	t.Parallel()

	router := newInsightsRouter(keywordEmbedder{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/insights/analyze", strings.NewReader("not a form"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestPredictRequiresAnalysis(t *testing.T) {
	t.Parallel()

	router := newInsightsRouter(keywordEmbedder{})
	rec := postJSON(t, router, "/api/v1/insights/predict", `{"description":"Urgent outage"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 before any analysis, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPredictAfterAnalysis(t *testing.T) {
	t.Parallel()

	router := newInsightsRouter(keywordEmbedder{})
	if rec := uploadCSV(t, router, trainingCSV); rec.Code != http.StatusOK {
		t.Fatalf("analyze failed: %d: %s", rec.Code, rec.Body.String())
	}

	rec := postJSON(t, router, "/api/v1/insights/predict", `{"description":"Urgent database outage"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var pred insights.Prediction
	decodeData(t, rec, &pred)
	if pred.Priority != "High" {
		t.Errorf("expected High, got %q", pred.Priority)
	}
	if pred.RecommendedUser != "alice" {
		t.Errorf("expected least-loaded user alice, got %q", pred.RecommendedUser)
	}
}

func TestPredictValidation(t *testing.T) {
	t.Parallel()

	router := newInsightsRouter(keywordEmbedder{})

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{`},
		{"empty description", `{"description":""}`},
		{"missing description", `{}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := postJSON(t, router, "/api/v1/insights/predict", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}
