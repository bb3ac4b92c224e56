// Package service defines the backend-agnostic interface for pushing
// tasks to a remote task service.
package service

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a list or task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous")

	// ErrAuth is returned when the stored token is expired or revoked.
	ErrAuth = errors.New("token expired or revoked (run: todo login)")
)

// Service is the remote side of push. Commands never import the Google
// SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns an error wrapping ErrNotFound or ErrAmbiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateList creates a new task list and returns it.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// ListTasks returns every task in a list, completed ones included.
	ListTasks(ctx context.Context, listID string) ([]Task, error)

	// CreateTask creates a task in the specified list.
	CreateTask(ctx context.Context, listID string, task Task) error
}
