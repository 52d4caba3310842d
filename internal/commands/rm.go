package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"ltask/internal/config"
	"ltask/internal/task"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "ltask rm <ref>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		return userError(errOut, ErrTaskRefRequired)
	}

	t, err := resolveArg(st, args[0])
	if err != nil {
		return userError(errOut, err)
	}

	if _, err := st.Delete(ctx, t.ID); err != nil {
		return storageError(errOut, err)
	}
	cfg.Logger.Debug("task deleted", "id", t.ID)

	return confirm(cfg, out)
}
