package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unitask/unitask-api/internal/store"
	"go.uber.org/zap"
)

// DashboardHandler serves the Dashboard overview
type DashboardHandler struct {
	tasks  *store.TaskStore
	logger *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(tasks *store.TaskStore, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{tasks: tasks, logger: logger}
}

// RegisterRoutes registers dashboard routes on the given router
func (h *DashboardHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.GetDashboard).Methods("GET")
}

// DashboardResponse carries the overview metrics and, when tasks exist,
// the category and priority distributions behind the two pie charts.
type DashboardResponse struct {
	TotalTasks           int            `json:"total_tasks"`
	CompletedTasks       int            `json:"completed_tasks"`
	CompletionRate       float64        `json:"completion_rate"`
	CategoryDistribution map[string]int `json:"category_distribution,omitempty"`
	PriorityDistribution map[string]int `json:"priority_distribution,omitempty"`
}

// GetDashboard returns the Dashboard overview for the current session
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	resp := DashboardResponse{
		TotalTasks:     h.tasks.Count(),
		CompletedTasks: h.tasks.CompletedCount(),
		CompletionRate: h.tasks.CompletionRate(),
	}

	if resp.TotalTasks > 0 {
		resp.CategoryDistribution = h.tasks.CategoryDistribution()
		resp.PriorityDistribution = h.tasks.PriorityDistribution()
	}

	respondJSON(w, http.StatusOK, resp)
}
