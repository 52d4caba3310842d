package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/output"
	"ltask/internal/task"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Print task counts" }
func (c *StatsCmd) Usage() string     { return "ltask stats" }
func (c *StatsCmd) NeedsStore() bool  { return true }

func (c *StatsCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, args []string, out, errOut io.Writer) int {
	output.FormatStats(out, st.Stats())
	return exitcode.Success
}
