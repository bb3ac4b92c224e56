package ui

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/config"
	"todo/internal/store"
	"todo/internal/task"
)

func cancelledProgramOptions() []tea.ProgramOption {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	}
}

func TestRunProgram_CancelledContextSaves(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.txt")
	st := store.New()
	st.Add("Buy milk", task.Date(2024, 12, 25))
	m := New(st, path, &config.Config{Dir: dir}, nil)

	err := runProgram(m, cancelledProgramOptions()...)

	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected task file written: %v", err)
	}
	if string(data) != "Buy milk\nFalse\n25-12-2024\n\n" {
		t.Errorf("unexpected file contents: %q", data)
	}
}

func TestRunProgram_CancelledContextSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	st := store.New()
	st.Add("Buy milk", nil)
	m := New(st, filepath.Join(blocker, "tasks.txt"), &config.Config{Dir: dir}, nil)

	err := runProgram(m, cancelledProgramOptions()...)

	if err == nil || errors.Is(err, ErrInterrupted) {
		t.Errorf("expected save error, got %v", err)
	}
}
