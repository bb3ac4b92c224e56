package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/exitcode"
	"todo/internal/output"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd prints the Google Tasks lists available as push targets.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print Google Tasks lists" }
func (c *ListsCmd) Usage() string     { return "todo lists" }
func (c *ListsCmd) NeedsStore() bool  { return false }
func (c *ListsCmd) NeedsAuth() bool   { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	lists, err := env.Service.ListLists(ctx)
	if err != nil {
		return reportBackendError(errOut, err)
	}

	for _, list := range lists {
		output.FormatListName(out, list)
	}
	return exitcode.Success
}
