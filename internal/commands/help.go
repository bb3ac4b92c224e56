package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/exitcode"
)

func init() {
	Register(&HelpCmd{registry: DefaultRegistry})
}

// HelpCmd prints usage for every command in its registry.
type HelpCmd struct {
	registry *Registry
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	registry := c.registry
	if registry == nil {
		registry = DefaultRegistry
	}
	writeHelp(out, registry.All())
	return exitcode.Success
}

const commonFlagsHelp = `Common flags:
  --config <dir>   Override config directory
  --file <path>    Override task file (also TODO_FILE)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`

func writeHelp(w io.Writer, cmds []Command) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo                 List all tasks")
	for _, cmd := range cmds {
		fmt.Fprintf(w, "  %-20s %s\n", cmd.Name(), cmd.Synopsis())
		fmt.Fprintf(w, "  %-20s %s\n", "", cmd.Usage())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			fmt.Fprintf(w, "  %-20s aliases: %s\n", "", strings.Join(aliases, ", "))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, commonFlagsHelp)
}
