// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"github.com/charmbracelet/log"

	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/store"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or changes the task list.
	NeedsStore() bool

	// NeedsAuth returns true if the command talks to Google Tasks.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with positional args after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// Env carries what a command runs against.
type Env struct {
	// Config is always set.
	Config *config.Config

	// Store holds the loaded task list; nil unless NeedsStore() is true.
	Store *store.Store

	// Service is the Google Tasks backend; nil unless NeedsAuth() is true.
	Service service.Service

	// Log receives debug events. May be nil.
	Log *log.Logger
}

// Logger returns env.Log, or a logger that discards everything.
func (e *Env) Logger() *log.Logger {
	if e.Log == nil {
		e.Log = log.New(io.Discard)
	}
	return e.Log
}
