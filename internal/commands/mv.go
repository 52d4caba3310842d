package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"

	"ltask/internal/config"
	"ltask/internal/task"
)

func init() {
	Register(&MvCmd{})
	Register(&ReorderCmd{})
}

// MvCmd implements the mv command: move one task to a new position.
type MvCmd struct{}

func (c *MvCmd) Name() string      { return "mv" }
func (c *MvCmd) Aliases() []string { return []string{"move"} }
func (c *MvCmd) Synopsis() string  { return "Move a task to a position" }
func (c *MvCmd) Usage() string     { return "ltask mv <ref> <position>" }
func (c *MvCmd) NeedsStore() bool  { return true }

func (c *MvCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *MvCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return userError(errOut, ErrTaskRefRequired)
	}
	if len(args) != 2 {
		return userError(errOut, fmt.Errorf("position required"))
	}

	t, err := resolveArg(st, args[0])
	if err != nil {
		return userError(errOut, err)
	}

	all := st.All()
	pos, err := strconv.Atoi(args[1])
	if err != nil || !isAllDigits(args[1]) || pos < 1 || pos > len(all) {
		return userError(errOut, fmt.Errorf("position out of range: %s", args[1]))
	}

	if err := st.Reorder(ctx, moveTo(all, t.ID, pos-1)); err != nil {
		return storageError(errOut, err)
	}
	cfg.Logger.Debug("task moved", "id", t.ID, "position", pos)

	return confirm(cfg, out)
}

// moveTo returns the ids of tasks with id moved to index dst.
func moveTo(tasks []task.Task, id int64, dst int) []int64 {
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			ids = append(ids, t.ID)
		}
	}
	ids = append(ids, 0)
	copy(ids[dst+1:], ids[dst:])
	ids[dst] = id
	return ids
}

// ReorderCmd implements the reorder command. The named tasks come first in
// the given order; the rest follow in their current order.
type ReorderCmd struct{}

func (c *ReorderCmd) Name() string      { return "reorder" }
func (c *ReorderCmd) Aliases() []string { return nil }
func (c *ReorderCmd) Synopsis() string  { return "Set the task order" }
func (c *ReorderCmd) Usage() string     { return "ltask reorder <ref...>" }
func (c *ReorderCmd) NeedsStore() bool  { return true }

func (c *ReorderCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ReorderCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return userError(errOut, ErrTaskRefRequired)
	}

	// Resolve every ref against the current order before changing it.
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		t, err := resolveArg(st, arg)
		if err != nil {
			return userError(errOut, err)
		}
		ids = append(ids, t.ID)
	}

	if err := st.Reorder(ctx, ids); err != nil {
		return storageError(errOut, err)
	}
	cfg.Logger.Debug("tasks reordered", "count", len(ids))

	return confirm(cfg, out)
}
