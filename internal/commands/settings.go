package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/output"
	"ltask/internal/persist"
	"ltask/internal/task"
)

func init() {
	Register(&ConfigCmd{})
}

// ConfigCmd implements the config command: print the effective settings,
// or update config.yaml when any setting flag is given.
type ConfigCmd struct {
	backend string
	key     string
	filter  string
}

func (c *ConfigCmd) Name() string      { return "config" }
func (c *ConfigCmd) Aliases() []string { return nil }
func (c *ConfigCmd) Synopsis() string  { return "Show or change settings" }
func (c *ConfigCmd) Usage() string {
	return "ltask config [--backend json|sqlite] [--key <key>] [--filter <filter>]"
}
func (c *ConfigCmd) NeedsStore() bool { return false }

func (c *ConfigCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.backend, "backend", "", "storage backend (json|sqlite)")
	fs.StringVar(&c.key, "key", "", "storage key")
	fs.StringVarP(&c.filter, "filter", "f", "", "default list filter")
}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, args []string, out, errOut io.Writer) int {
	if c.backend == "" && c.key == "" && c.filter == "" {
		output.FormatSettings(out, [][2]string{
			{"dir", cfg.Dir},
			{"backend", cfg.Backend},
			{"key", cfg.Key},
			{"filter", cfg.Filter.String()},
		})
		return exitcode.Success
	}

	if c.backend != "" {
		b := strings.ToLower(c.backend)
		if b != config.BackendJSON && b != config.BackendSQLite {
			fmt.Fprintf(errOut, "error: unknown backend: %s\n", c.backend)
			return exitcode.UserError
		}
		cfg.Backend = b
	}
	if c.key != "" {
		key := strings.TrimSpace(c.key)
		if err := persist.ValidKey(key); err != nil {
			return userError(errOut, err)
		}
		cfg.Key = key
	}
	if c.filter != "" {
		f, err := task.ParseFilter(c.filter)
		if err != nil {
			return userError(errOut, err)
		}
		cfg.Filter = f
	}

	if err := cfg.Save(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	return confirm(cfg, out)
}
