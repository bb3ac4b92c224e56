// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, index out of range, invalid date).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a Google Tasks API or network error.
	BackendError = 3

	// StorageError indicates the task file could not be read, parsed or written.
	StorageError = 4

	// Interrupted indicates the command was stopped by SIGINT or SIGTERM.
	Interrupted = 130
)
