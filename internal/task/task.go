// Package task defines the to-do item and its display label.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the DD-MM-YYYY layout used for display and storage.
const DateLayout = "02-01-2006"

// inputLayout also accepts a single-digit day or month ("5-3-2024").
const inputLayout = "2-1-2006"

// ErrInvalidDate indicates a date string that does not match DD-MM-YYYY.
var ErrInvalidDate = errors.New("invalid date format")

// Task is a single to-do item. It has no identity beyond its position in a list.
type Task struct {
	Description string
	Completed   bool
	Due         *time.Time // calendar date, nil if none
}

// Labels holds the user-facing strings used to render a task.
type Labels struct {
	Done    string
	Pending string
	Due     string
}

// DefaultLabels returns the built-in glyphs and due-date prefix.
func DefaultLabels() Labels {
	return Labels{
		Done:    "✓",
		Pending: "◻",
		Due:     "Due",
	}
}

// New creates a pending task.
func New(description string, due *time.Time) Task {
	return Task{Description: description, Due: due}
}

// MarkCompleted marks the task done. Completing twice is a no-op.
func (t *Task) MarkCompleted() {
	t.Completed = true
}

// HasDue reports whether the task carries a due date.
func (t Task) HasDue() bool {
	return t.Due != nil
}

// Label renders the task for a list view:
// "<glyph> <description>" followed by " (Due: DD-MM-YYYY)" when a due date is set.
func (t Task) Label(l Labels) string {
	glyph := l.Pending
	if t.Completed {
		glyph = l.Done
	}
	label := glyph + " " + t.Description
	if t.Due != nil {
		label += fmt.Sprintf(" (%s: %s)", l.Due, FormatDate(*t.Due))
	}
	return label
}

// ParseDate parses a D-M-YYYY or DD-MM-YYYY date. Surrounding whitespace
// is ignored.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(inputLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want DD-MM-YYYY)", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseOptionalDate parses s as a due date. An empty string yields nil.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FormatDate formats d as DD-MM-YYYY.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// Date returns a pointer to the calendar date y-m-d at midnight UTC.
func Date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// Equal reports whether two tasks carry the same description, flag and due date.
func (t Task) Equal(o Task) bool {
	if t.Description != o.Description || t.Completed != o.Completed {
		return false
	}
	if t.Due == nil || o.Due == nil {
		return t.Due == nil && o.Due == nil
	}
	return t.Due.Equal(*o.Due)
}
