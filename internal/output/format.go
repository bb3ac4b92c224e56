// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/service"
	"todo/internal/task"
)

// FormatTask formats a numbered task line.
// Format: "{N:>4}  {LABEL}\n" (4-wide right-aligned number, two spaces, label)
func FormatTask(w io.Writer, num int, t task.Task, labels task.Labels) {
	t.Description = normalizeTitle(t.Description)
	fmt.Fprintf(w, "%4d  %s\n", num, t.Label(labels))
}

// FormatTasks writes every task numbered from 1. When pendingOnly is set,
// completed tasks are skipped but keep their numbers. Returns the number
// of lines written.
func FormatTasks(w io.Writer, tasks []task.Task, labels task.Labels, pendingOnly bool) int {
	n := 0
	for i, t := range tasks {
		if pendingOnly && t.Completed {
			continue
		}
		FormatTask(w, i+1, t, labels)
		n++
	}
	return n
}

// FormatListName formats a remote list name for the lists command.
func FormatListName(w io.Writer, list service.TaskList) {
	title := normalizeTitle(list.Title)
	if list.IsDefault {
		title += " [default]"
	}
	fmt.Fprintln(w, title)
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
