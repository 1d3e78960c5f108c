package handlers

import (
	"net/http"
	"time"
)

// HealthResponse is the health check payload
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthChecker reports service health. The only external dependency is
// the embedding provider, which may be absent by configuration.
type HealthChecker struct {
	embeddingConfigured bool
}

// NewHealthChecker creates a health checker
func NewHealthChecker(embeddingConfigured bool) *HealthChecker {
	return &HealthChecker{embeddingConfigured: embeddingConfigured}
}

// HealthCheck handles GET /healthz. With ?mode=extended it reports the
// state of optional features.
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if r.URL.Query().Get("mode") == "extended" {
		embeddings := "configured"
		if !h.embeddingConfigured {
			embeddings = "disabled"
		}
		resp.Checks = map[string]string{
			"embeddings": embeddings,
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// VersionInfo handles GET /version with minimal version metadata
func VersionInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"version": Version})
}

// Version is the reported service version. Overridable at build time with
// -ldflags "-X ...handlers.Version=v1.2.3".
var Version = "1.0.0"
