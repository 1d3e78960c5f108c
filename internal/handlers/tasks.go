package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unitask/unitask-api/internal/models"
	"github.com/unitask/unitask-api/internal/store"
	"github.com/unitask/unitask-api/internal/validation"
	"go.uber.org/zap"
)

const (
	// MaxDescriptionLength is the maximum length for a task description
	MaxDescriptionLength = 10000
)

// TaskHandler handles the Add Task and Task List views
type TaskHandler struct {
	tasks  *store.TaskStore
	logger *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(tasks *store.TaskStore, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

// RegisterRoutes registers task routes on the given router.
// The router should already carry the /tasks prefix.
func (h *TaskHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTasks).Methods("GET")
	r.HandleFunc("", h.AddTask).Methods("POST")
}

// AddTaskRequest mirrors the Add Task form
type AddTaskRequest struct {
	Description    string  `json:"description" validate:"max=10000"`
	EstimatedHours float64 `json:"estimated_hours" validate:"gte=0"`
	DueDate        string  `json:"due_date"`
	Category       string  `json:"category"`
	Priority       string  `json:"priority" validate:"required,task_priority"`
	Status         string  `json:"status" validate:"required,task_status"`
}

// AddTaskResponse reports whether a task was created. A submission with an
// empty description is not an error: no task is added and Added is false.
type AddTaskResponse struct {
	Added bool         `json:"added"`
	Task  *models.Task `json:"task,omitempty"`
}

// AddTask handles the Add Task form submission
func (h *TaskHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	var req AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	task, added := h.tasks.Add(models.Task{
		Description:    req.Description,
		EstimatedHours: req.EstimatedHours,
		DueDate:        req.DueDate,
		Category:       req.Category,
		Priority:       models.TaskPriority(req.Priority),
		Status:         models.TaskStatus(req.Status),
	})
	if !added {
		// Empty description: no task created, not an error
		respondJSON(w, http.StatusOK, AddTaskResponse{Added: false})
		return
	}

	respondJSON(w, http.StatusCreated, AddTaskResponse{Added: true, Task: &task})
}

// ListTasksResponse is the filterable Task List table
type ListTasksResponse struct {
	Tasks []models.Task `json:"tasks"`
	Total int           `json:"total"`
}

// ListTasks returns the ordered task sequence, optionally filtered by
// status and priority query parameters.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	var status models.TaskStatus
	if s := r.URL.Query().Get("status"); s != "" && s != "All" {
		if err := validation.ValidateTaskStatus(s); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		status = models.TaskStatus(s)
	}

	var priority models.TaskPriority
	if p := r.URL.Query().Get("priority"); p != "" && p != "All" {
		if err := validation.ValidateTaskPriority(p); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		priority = models.TaskPriority(p)
	}

	tasks := h.tasks.Filter(status, priority)
	respondJSON(w, http.StatusOK, ListTasksResponse{Tasks: tasks, Total: len(tasks)})
}
