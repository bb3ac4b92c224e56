package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd opens the interactive list view.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Interactive list view" }
func (c *UICmd) Usage() string     { return "todo ui" }
func (c *UICmd) NeedsStore() bool  { return true }
func (c *UICmd) NeedsAuth() bool   { return false }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	err := ui.Run(ctx, env.Store, env.Config.TasksPath(), env.Config, env.Logger())
	return uiExitCode(err, errOut)
}

func uiExitCode(err error, errOut io.Writer) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, ui.ErrInterrupted):
		return exitcode.Interrupted
	case errors.Is(err, ui.ErrNoTTY):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
}
