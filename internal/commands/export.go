package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"todo/internal/exitcode"
	"todo/internal/export"
	"todo/internal/task"
)

func init() {
	Register(&ExportCmd{})
	Register(&ImportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	output string
}

// SetOptions sets the format and output path (for testing).
func (c *ExportCmd) SetOptions(format, output string) {
	c.format = format
	c.output = output
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Write the task list as text, JSON or PDF" }
func (c *ExportCmd) Usage() string {
	return "todo export [--format text|json|pdf] [--output <path>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }
func (c *ExportCmd) NeedsAuth() bool  { return false }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "text", "")
	fs.StringVar(&c.output, "output", "", "")
	fs.StringVar(&c.output, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	name := c.format
	if name == "" {
		name = string(export.FormatText)
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if format == export.FormatPDF && c.output == "" {
		fmt.Fprintln(errOut, "error: --output required for pdf")
		return exitcode.UserError
	}

	opts := export.Options{
		Labels: env.Config.TaskLabels(),
		Title:  env.Config.Title(),
	}

	if c.output == "" {
		if err := export.Write(out, format, env.Store.List(), opts); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.StorageError
		}
		return exitcode.Success
	}

	f, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
	if err := export.Write(f, format, env.Store.List(), opts); err != nil {
		f.Close()
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
	env.Logger().Debug("exported tasks", "format", format, "path", c.output, "count", env.Store.Len())
	return reportOK(env, out)
}

// ImportCmd implements the import command.
type ImportCmd struct {
	replace bool
}

// SetReplace sets the replace flag (for testing).
func (c *ImportCmd) SetReplace(replace bool) {
	c.replace = replace
}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Add tasks from a JSON export" }
func (c *ImportCmd) Usage() string     { return "todo import [--replace] <file.json>" }
func (c *ImportCmd) NeedsStore() bool  { return true }
func (c *ImportCmd) NeedsAuth() bool   { return false }

func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.replace, "replace", false, "")
}

func (c *ImportCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: file required")
		return exitcode.UserError
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	defer f.Close()

	imported, err := export.ReadJSON(f)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if c.replace {
		env.Store.Replace(imported)
	} else {
		all := append([]task.Task(nil), env.Store.List()...)
		env.Store.Replace(append(all, imported...))
	}
	env.Logger().Debug("imported tasks", "path", args[0], "count", len(imported), "replace", c.replace)

	if code := saveTasks(env, errOut); code != exitcode.Success {
		return code
	}
	return reportOK(env, out)
}
