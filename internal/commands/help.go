package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/task"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "ltask help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, HelpText)
	return exitcode.Success
}

// HelpText is the full usage text.
const HelpText = `Usage:
  ltask                                  List tasks
  ltask list [--filter <filter>]         List all, active, or completed tasks
  ltask add <text...>                    Add a task
  ltask done <ref>                       Toggle a task's completion
  ltask edit <ref> <text...>             Replace a task's text
  ltask rm <ref>                         Delete a task
  ltask mv <ref> <position>              Move a task to a position
  ltask reorder <ref...>                 Put tasks first, in the given order
  ltask stats                            Print task counts
  ltask export [--format json|csv|pdf] [--filter <filter>] [--out <file>]
  ltask config [--backend json|sqlite] [--key <key>] [--filter <filter>]
  ltask help
  ltask version

Task references:
  <n>              Position in the full list, as printed by list
  #<id>            Task id

Common flags (before any argument; later words are text):
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
