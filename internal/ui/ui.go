// Package ui is the interactive list view over a task store.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"todo/internal/config"
	"todo/internal/store"
	"todo/internal/task"
)

var (
	// ErrNoTTY is returned by Run when stdout is not a terminal.
	ErrNoTTY = errors.New("ui requires a terminal")

	// ErrInterrupted is returned by Run when the program was stopped by
	// its context after the tasks were saved.
	ErrInterrupted = errors.New("interrupted")
)

type mode int

const (
	modeList mode = iota
	modeDescription
	modeDue
)

const helpLine = "a add • space/x complete • d remove • w save • q quit"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the bubbletea model for the list view. Changes go straight to
// the store; the file is written on 'w' and on quit.
type Model struct {
	store  *store.Store
	path   string
	labels task.Labels
	title  string
	log    *log.Logger

	cursor      int
	mode        mode
	input       textinput.Model
	pendingDesc string
	status      string

	// saveErr is the last failed save. A quit with a failed save stays
	// open once so the notice can be read.
	saveErr error
	quitting bool
}

// New returns a list view over st that saves to path.
func New(st *store.Store, path string, cfg *config.Config, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	return &Model{
		store:  st,
		path:   path,
		labels: cfg.TaskLabels(),
		title:  cfg.Title(),
		log:    logger,
		input:  ti,
		status: "Press 'a' to add a task.",
	}
}

// Run starts the list view and blocks until the user quits or ctx is
// cancelled. The store is saved on the way out in both cases.
func Run(ctx context.Context, st *store.Store, path string, cfg *config.Config, logger *log.Logger) error {
	if !IsTTY(os.Stdout) {
		return ErrNoTTY
	}
	return runProgram(New(st, path, cfg, logger), tea.WithAltScreen(), tea.WithContext(ctx))
}

func runProgram(m *Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		if !m.save() {
			return m.saveErr
		}
		return fmt.Errorf("%w: %v", ErrInterrupted, err)
	}
	if err != nil {
		return err
	}
	return m.Err()
}

// Err returns the last save error, or nil if the last save succeeded.
func (m *Model) Err() error {
	return m.saveErr
}

// Cursor returns the zero-based index of the selected task.
func (m *Model) Cursor() int {
	return m.cursor
}

// Status returns the notice shown under the list.
func (m *Model) Status() string {
	return m.status
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg.String())
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
	}
	return m, nil
}

func (m *Model) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m.quit()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}
	case "a":
		m.mode = modeDescription
		m.input.Placeholder = "Description"
		m.input.SetValue("")
		m.status = "New task: type a description and press Enter"
		return m, m.input.Focus()
	case " ", "x":
		if err := m.store.Complete(m.cursor); err != nil {
			m.status = notice(err)
			return m, nil
		}
		m.status = "Completed task"
	case "d":
		if err := m.store.Remove(m.cursor); err != nil {
			m.status = notice(err)
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, m.store.Len())
		m.status = "Removed task"
	case "w":
		if m.save() {
			m.status = fmt.Sprintf("Saved %d tasks", m.store.Len())
		}
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.resetInput()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		if m.mode == modeDescription {
			if value == "" {
				m.status = "Description cannot be empty"
				return m, nil
			}
			m.pendingDesc = value
			m.mode = modeDue
			m.input.Placeholder = "DD-MM-YYYY"
			m.input.SetValue("")
			m.status = "Due date (optional): press Enter to skip"
			return m, nil
		}
		due, err := task.ParseOptionalDate(value)
		if err != nil {
			m.resetInput()
			m.status = notice(err)
			return m, nil
		}
		m.store.Add(m.pendingDesc, due)
		m.cursor = m.store.Len() - 1
		m.resetInput()
		m.status = "Added task"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resetInput() {
	m.mode = modeList
	m.pendingDesc = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.save() || m.quitting {
		return m, tea.Quit
	}
	m.quitting = true
	m.status += " (press q again to quit without saving)"
	return m, nil
}

// save writes the store to path and reports whether it succeeded.
func (m *Model) save() bool {
	if err := m.store.Save(m.path); err != nil {
		m.saveErr = err
		m.status = fmt.Sprintf("save failed: %v", err)
		m.log.Warn("save failed", "path", m.path, "err", err)
		return false
	}
	m.saveErr = nil
	m.quitting = false
	m.log.Debug("saved tasks", "path", m.path, "count", m.store.Len())
	return true
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	tasks := m.store.List()
	if len(tasks) == 0 {
		b.WriteString("No tasks yet.")
		b.WriteString("\n")
	}
	for i, t := range tasks {
		line := fmt.Sprintf("%d. %s", i+1, t.Label(m.labels))
		if t.Completed {
			line = doneStyle.Render(line)
		}
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode != modeList {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(helpLine))
	b.WriteString("\n")
	return b.String()
}

func notice(err error) string {
	switch {
	case errors.Is(err, store.ErrOutOfRange):
		return "No task selected"
	case errors.Is(err, task.ErrInvalidDate):
		return fmt.Sprintf("Task not added: %v", err)
	default:
		return err.Error()
	}
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
