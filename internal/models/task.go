package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Task represents a task created through the Add Task form. Tasks are
// immutable after creation and live only as long as the session.
type Task struct {
	ID             uuid.UUID    `json:"id"`
	Description    string       `json:"description"`
	EstimatedHours float64      `json:"estimated_hours"`
	DueDate        string       `json:"due_date"`
	Category       string       `json:"category"`
	Priority       TaskPriority `json:"priority"`
	Status         TaskStatus   `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
}
