package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"ltask/internal/config"
	"ltask/internal/task"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. Running it on a completed task
// marks it active again.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "ltask done <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		return userError(errOut, ErrTaskRefRequired)
	}

	t, err := resolveArg(st, args[0])
	if err != nil {
		return userError(errOut, err)
	}

	if _, err := st.Toggle(ctx, t.ID); err != nil {
		return storageError(errOut, err)
	}
	cfg.Logger.Debug("task toggled", "id", t.ID, "completed", !t.Completed)

	return confirm(cfg, out)
}
