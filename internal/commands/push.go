package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/task"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd copies local tasks into a Google Tasks list. Tasks whose
// description already exists in the target list are skipped.
type PushCmd struct {
	listName string
	create   bool
	pending  bool
}

// SetOptions sets the push flags (for testing).
func (c *PushCmd) SetOptions(listName string, create, pending bool) {
	c.listName = listName
	c.create = create
	c.pending = pending
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy tasks to Google Tasks" }
func (c *PushCmd) Usage() string {
	return "todo push [--list <list-name>] [--create] [--pending]"
}
func (c *PushCmd) NeedsStore() bool { return true }
func (c *PushCmd) NeedsAuth() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.create, "create", false, "")
	fs.BoolVar(&c.pending, "pending", false, "")
}

func (c *PushCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	svc := env.Service
	log := env.Logger()

	list, code := c.resolveList(ctx, svc, errOut)
	if code != exitcode.Success {
		return code
	}
	log.Debug("push target", "list", list.Title, "id", list.ID)

	existing, err := svc.ListTasks(ctx, list.ID)
	if err != nil {
		return reportBackendError(errOut, err)
	}
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[strings.TrimSpace(t.Title)] = true
	}

	var selected []task.Task
	skipped := 0
	for _, t := range env.Store.List() {
		if c.pending && t.Completed {
			continue
		}
		if seen[t.Description] {
			skipped++
			continue
		}
		seen[t.Description] = true
		selected = append(selected, t)
	}

	pushed := 0
	for _, t := range selected {
		if err := svc.CreateTask(ctx, list.ID, toRemote(t)); err != nil {
			fmt.Fprintf(errOut, "error: pushed %d of %d tasks\n", pushed, len(selected))
			return reportBackendError(errOut, err)
		}
		pushed++
	}
	log.Debug("push finished", "pushed", pushed, "skipped", skipped)

	if !env.Config.Quiet {
		fmt.Fprintf(out, "pushed %d, skipped %d\n", pushed, skipped)
	}
	return exitcode.Success
}

func (c *PushCmd) resolveList(ctx context.Context, svc service.Service, errOut io.Writer) (service.TaskList, int) {
	name := strings.TrimSpace(c.listName)
	if name == "" {
		list, err := svc.DefaultList(ctx)
		if err != nil {
			return list, reportBackendError(errOut, err)
		}
		return list, exitcode.Success
	}

	list, err := svc.ResolveList(ctx, name)
	switch {
	case err == nil:
		return list, exitcode.Success
	case errors.Is(err, service.ErrNotFound) && c.create:
		list, err = svc.CreateList(ctx, name)
		if err != nil {
			return list, reportBackendError(errOut, err)
		}
		return list, exitcode.Success
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: list not found: %s (use --create)\n", name)
		return list, exitcode.UserError
	case errors.Is(err, service.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", name)
		return list, exitcode.UserError
	default:
		return list, reportBackendError(errOut, err)
	}
}

func toRemote(t task.Task) service.Task {
	status := service.StatusNeedsAction
	if t.Completed {
		status = service.StatusCompleted
	}
	return service.Task{Title: t.Description, Status: status, Due: t.Due}
}

func reportBackendError(errOut io.Writer, err error) int {
	if errors.Is(err, service.ErrAuth) {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
