package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/output"
	"ltask/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. It is also what runs when ltask is
// invoked with no arguments.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(name string) {
	c.filter = name
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "ltask list [--filter all|active|completed]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.filter, "filter", "f", "", "show all, active, or completed tasks")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if c.filter != "" {
		f, err := task.ParseFilter(c.filter)
		if err != nil {
			return userError(errOut, err)
		}
		st.SetFilter(f)
	}

	view := st.View()
	if len(view) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.EmptyMessage)
		}
	}
	for _, t := range view {
		output.FormatTask(out, st.IndexOf(t.ID)+1, t)
	}

	if stats := st.Stats(); stats.Total > 0 && !cfg.Quiet {
		output.FormatStats(out, stats)
	}
	return exitcode.Success
}
