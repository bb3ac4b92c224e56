package commands

import (
	"errors"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/store"
	"todo/internal/task"
)

// saveTasks writes the store to the configured task file.
// Mutating commands call it explicitly after a successful change.
func saveTasks(env *Env, errOut io.Writer) int {
	path := env.Config.TasksPath()
	if err := env.Store.Save(path); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
	env.Logger().Debug("saved tasks", "path", path, "count", env.Store.Len())
	return exitcode.Success
}

// reportTaskError prints the notice for a failed index or date operation.
func reportTaskError(errOut io.Writer, err error, num int) int {
	switch {
	case errors.Is(err, store.ErrOutOfRange):
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
		return exitcode.UserError
	case errors.Is(err, task.ErrInvalidDate):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
}

func reportOK(env *Env, out io.Writer) int {
	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
