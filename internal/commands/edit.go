package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Replace a task's text" }
func (c *EditCmd) Usage() string     { return "ltask edit <ref> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return userError(errOut, ErrTaskRefRequired)
	}

	t, err := resolveArg(st, args[0])
	if err != nil {
		return userError(errOut, err)
	}

	text := strings.Join(args[1:], " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	if _, err := st.Edit(ctx, t.ID, text); err != nil {
		return storageError(errOut, err)
	}
	cfg.Logger.Debug("task edited", "id", t.ID)

	return confirm(cfg, out)
}
