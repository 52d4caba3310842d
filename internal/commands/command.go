// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"ltask/internal/config"
	"ltask/internal/task"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or mutates the task list.
	// Commands like help, version, config return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *pflag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, settings, logger).
	// st is nil if NeedsStore() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, st *task.Store, args []string, out, errOut io.Writer) int
}
