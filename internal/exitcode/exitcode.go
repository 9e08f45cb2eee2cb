// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task reference).
	UserError = 1

	// ConfigError indicates an unreadable config directory or config file.
	ConfigError = 2

	// StorageError indicates the task snapshot could not be written.
	StorageError = 3
)
