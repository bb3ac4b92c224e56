package ui_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/config"
	"todo/internal/store"
	"todo/internal/task"
	"todo/internal/ui"
)

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *ui.Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func newModel(t *testing.T, st *store.Store) (*ui.Model, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.txt")
	return ui.New(st, path, &config.Config{Dir: dir}, nil), path
}

func TestAddTaskWithDueDate(t *testing.T) {
	st := store.New()
	m, _ := newModel(t, st)

	send(m,
		keys("a"),
		keys("Buy milk"),
		tea.KeyMsg{Type: tea.KeyEnter},
		keys("25-12-2024"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	if st.Len() != 1 {
		t.Fatalf("expected 1 task, got %d", st.Len())
	}
	got, _ := st.Get(0)
	want := task.New("Buy milk", task.Date(2024, 12, 25))
	if !got.Equal(want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if m.Cursor() != 0 {
		t.Errorf("expected cursor on new task, got %d", m.Cursor())
	}
}

func TestAddTaskWithoutDueDate(t *testing.T) {
	st := store.New()
	m, _ := newModel(t, st)

	send(m, keys("a"), keys("Call mom"), tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter})

	got, err := st.Get(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.HasDue() {
		t.Errorf("expected no due date, got %v", got.Due)
	}
}

func TestAddTaskInvalidDateIsNotAdded(t *testing.T) {
	st := store.New()
	m, _ := newModel(t, st)

	send(m, keys("a"), keys("Pay rent"), tea.KeyMsg{Type: tea.KeyEnter}, keys("31-02-2024"), tea.KeyMsg{Type: tea.KeyEnter})

	if st.Len() != 0 {
		t.Errorf("expected no task, got %d", st.Len())
	}
	if !strings.Contains(m.Status(), "not added") {
		t.Errorf("expected notice, got %q", m.Status())
	}
}

func TestEmptyDescriptionStaysInInput(t *testing.T) {
	st := store.New()
	m, _ := newModel(t, st)

	send(m, keys("a"), tea.KeyMsg{Type: tea.KeyEnter})

	if st.Len() != 0 {
		t.Errorf("expected no task, got %d", st.Len())
	}
	if !strings.Contains(m.View(), "Description") {
		t.Errorf("expected description prompt in view, got:\n%s", m.View())
	}
}

func TestEscapeCancelsAdd(t *testing.T) {
	st := store.New()
	m, _ := newModel(t, st)

	send(m, keys("a"), keys("draft"), tea.KeyMsg{Type: tea.KeyEsc}, keys("q"))

	if st.Len() != 0 {
		t.Errorf("expected no task, got %d", st.Len())
	}
}

func TestCompleteAndRemoveSelected(t *testing.T) {
	st := store.New()
	st.Add("one", nil)
	st.Add("two", nil)
	st.Add("three", nil)
	m, _ := newModel(t, st)

	send(m, keys("j"), tea.KeyMsg{Type: tea.KeySpace})
	got, _ := st.Get(1)
	if !got.Completed {
		t.Errorf("expected task 2 completed")
	}

	send(m, keys("j"), keys("d"))
	if st.Len() != 2 {
		t.Fatalf("expected 2 tasks, got %d", st.Len())
	}
	if m.Cursor() != 1 {
		t.Errorf("expected cursor clamped to 1, got %d", m.Cursor())
	}

	send(m, keys("k"), keys("k"), keys("k"), keys("x"))
	got, _ = st.Get(0)
	if !got.Completed {
		t.Errorf("expected task 1 completed")
	}
}

func TestCompleteOnEmptyListIsNotice(t *testing.T) {
	st := store.New()
	m, _ := newModel(t, st)

	send(m, keys("x"))

	if m.Status() != "No task selected" {
		t.Errorf("expected notice, got %q", m.Status())
	}
}

func TestSaveAndQuitWritesFile(t *testing.T) {
	st := store.New()
	st.Add("Buy milk", task.Date(2024, 12, 25))
	m, path := newModel(t, st)

	cmd := send(m, keys("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "Buy milk\nFalse\n25-12-2024\n\n" {
		t.Errorf("unexpected file contents: %q", data)
	}
}

func TestWriteKeySaves(t *testing.T) {
	st := store.New()
	st.Add("one", nil)
	m, path := newModel(t, st)

	send(m, keys("w"))

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file written: %v", err)
	}
	if m.Status() != "Saved 1 tasks" {
		t.Errorf("unexpected status %q", m.Status())
	}
}

func TestFailedSaveNeedsSecondQuit(t *testing.T) {
	st := store.New()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	m := ui.New(st, filepath.Join(blocker, "tasks.txt"), &config.Config{Dir: dir}, nil)

	if cmd := send(m, keys("q")); cmd != nil {
		t.Fatal("expected to stay open after failed save")
	}
	if m.Err() == nil {
		t.Error("expected save error")
	}
	if cmd := send(m, keys("q")); cmd == nil {
		t.Error("expected second quit to exit")
	}
}

func TestViewUsesLabels(t *testing.T) {
	st := store.New()
	st.Add("Buy milk", task.Date(2024, 12, 25))
	st.Add("Call mom", nil)
	_ = st.Complete(1)
	dir := t.TempDir()
	cfg := &config.Config{Dir: dir, Labels: config.Labels{Done: "[x]", Title: "Chores"}}
	m := ui.New(st, filepath.Join(dir, "tasks.txt"), cfg, nil)

	view := m.View()
	for _, want := range []string{"Chores", "1. ◻ Buy milk (Due: 25-12-2024)", "2. [x] Call mom"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
}
