// Package store holds the ordered task list and persists it to a stanza file.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"todo/internal/task"
)

// ErrOutOfRange indicates an index outside [0, Len()).
var ErrOutOfRange = errors.New("task index out of range")

// Option configures a Store.
type Option func(*Store)

// WithLegacyTruncation makes Load drop a final stanza that is not followed
// by a blank line, matching files written by older versions.
func WithLegacyTruncation(enabled bool) Option {
	return func(s *Store) {
		s.truncate = enabled
	}
}

// Store is an ordered, in-memory task list. It is not safe for concurrent use.
type Store struct {
	tasks    []task.Task
	truncate bool
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a pending task.
func (s *Store) Add(description string, due *time.Time) {
	s.tasks = append(s.tasks, task.New(description, due))
}

// Complete marks the task at index as completed.
func (s *Store) Complete(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.tasks[index].MarkCompleted()
	return nil
}

// Remove deletes the task at index. Later tasks shift down by one.
func (s *Store) Remove(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return nil
}

// Get returns the task at index.
func (s *Store) Get(index int) (task.Task, error) {
	if err := s.check(index); err != nil {
		return task.Task{}, err
	}
	return s.tasks[index], nil
}

// List returns the tasks in insertion order. Callers must not modify it.
func (s *Store) List() []task.Task {
	return s.tasks
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Replace discards the current tasks and takes ownership of a copy of tasks.
func (s *Store) Replace(tasks []task.Task) {
	s.tasks = append([]task.Task(nil), tasks...)
}

// Save writes all tasks to path, replacing any existing file.
// The file is written to a temporary sibling and renamed into place.
func (s *Store) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create task file dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp task file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if err := Encode(tmp, s.tasks); err != nil {
		tmp.Close()
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}

// Load replaces the tasks with the contents of path. A missing file
// yields an empty list. On a parse error the current tasks are kept.
func (s *Store) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.tasks = nil
			return nil
		}
		return fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	tasks, err := Decode(f, s.truncate)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	s.tasks = tasks
	return nil
}

func (s *Store) check(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, index, len(s.tasks))
	}
	return nil
}
