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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "ltask add <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	t, _, err := st.Add(ctx, text)
	if err != nil {
		return storageError(errOut, err)
	}
	cfg.Logger.Debug("task added", "id", t.ID)

	return confirm(cfg, out)
}

// confirm prints the confirmation line unless quiet.
func confirm(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// storageError reports a failed load or save.
func storageError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.StorageError
}

// userError reports a bad argument or reference.
func userError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}
