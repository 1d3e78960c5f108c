package store

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/unitask/unitask-api/internal/models"
	"github.com/unitask/unitask-api/internal/validation"
	"go.uber.org/zap"
)

// TaskStore is the session-scoped task sequence. Tasks are append-only and
// live for the lifetime of the process; there is no persistence layer.
// The store is mutex-guarded because the HTTP host serves requests
// concurrently.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  []models.Task
	logger *zap.Logger
}

// NewTaskStore creates an empty task store
func NewTaskStore() *TaskStore {
	return &TaskStore{}
}

// SetLogger sets the logger used for store events
func (s *TaskStore) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// Add appends a task to the session sequence. Submissions with an empty
// description (after sanitization) are silently rejected: no task is
// appended, no error is returned, and the return value reports whether
// the task was added.
func (s *TaskStore) Add(task models.Task) (models.Task, bool) {
	task.Description = validation.SanitizeText(task.Description)
	if task.Description == "" {
		if s.logger != nil {
			s.logger.Debug("task_submission_ignored_empty_description")
		}
		return models.Task{}, false
	}

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	if task.EstimatedHours < 0 {
		task.EstimatedHours = 0
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("task_added",
			zap.String("task_id", task.ID.String()),
			zap.String("priority", string(task.Priority)),
			zap.String("status", string(task.Status)),
		)
	}
	return task, true
}

// List returns the full ordered task sequence
func (s *TaskStore) List() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Filter returns the ordered subset of tasks matching the given status and
// priority. An empty filter value matches everything.
func (s *TaskStore) Filter(status models.TaskStatus, priority models.TaskPriority) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if status != "" && t.Status != status {
			continue
		}
		if priority != "" && t.Priority != priority {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Count returns the number of tasks in the session
func (s *TaskStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// CompletedCount returns the number of tasks with status Completed
func (s *TaskStore) CompletedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, t := range s.tasks {
		if t.Status == models.TaskStatusCompleted {
			n++
		}
	}
	return n
}

// CompletionRate returns round(100*completed/total, 2). An empty store
// yields 0; this is the defined value, not an error.
func (s *TaskStore) CompletionRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range s.tasks {
		if t.Status == models.TaskStatusCompleted {
			completed++
		}
	}
	rate := 100 * float64(completed) / float64(len(s.tasks))
	return math.Round(rate*100) / 100
}

// CategoryDistribution returns task counts keyed by category
func (s *TaskStore) CategoryDistribution() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dist := make(map[string]int)
	for _, t := range s.tasks {
		dist[t.Category]++
	}
	return dist
}

// PriorityDistribution returns task counts keyed by priority
func (s *TaskStore) PriorityDistribution() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dist := make(map[string]int)
	for _, t := range s.tasks {
		dist[string(t.Priority)]++
	}
	return dist
}
