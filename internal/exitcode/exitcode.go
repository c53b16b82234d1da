// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, blank title, bad task reference).
	UserError = 1

	// ConfigError indicates a config or credentials error.
	ConfigError = 2

	// BackendError indicates a Task API or network error.
	BackendError = 3
)
