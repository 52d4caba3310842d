// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task reference).
	UserError = 1

	// ConfigError indicates an unreadable or invalid config.yaml.
	ConfigError = 2

	// StorageError indicates the task list could not be loaded or saved.
	StorageError = 3
)
