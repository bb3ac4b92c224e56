package service

import "time"

// Task statuses as used by Google Tasks.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Task represents a single remote task item.
type Task struct {
	ID     string
	Title  string
	Status string     // StatusNeedsAction or StatusCompleted
	Due    *time.Time // date only; nil if none
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
