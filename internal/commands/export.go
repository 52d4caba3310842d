package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/export"
	"ltask/internal/task"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	filter string
	out    string
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export tasks as JSON, CSV, or PDF" }
func (c *ExportCmd) Usage() string {
	return "ltask export [--format json|csv|pdf] [--filter <filter>] [--out <file>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.format, "format", "json", "output format (json|csv|pdf)")
	fs.StringVarP(&c.filter, "filter", "f", "all", "export all, active, or completed tasks")
	fs.StringVarP(&c.out, "out", "o", "", "write to file instead of stdout")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, args []string, out, errOut io.Writer) int {
	format := strings.ToLower(c.format)
	if !slices.Contains(export.Formats, format) {
		fmt.Fprintf(errOut, "error: invalid format %q: must be one of %v\n", c.format, export.Formats)
		return exitcode.UserError
	}

	f, err := task.ParseFilter(c.filter)
	if err != nil {
		return userError(errOut, err)
	}

	data, err := export.Export(st.Filtered(f), st.Stats(), format)
	if err != nil {
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.StorageError
	}

	if c.out == "" {
		if _, err := out.Write(data); err != nil {
			fmt.Fprintf(errOut, "error: write output: %v\n", err)
			return exitcode.StorageError
		}
		return exitcode.Success
	}

	if err := os.WriteFile(c.out, data, 0644); err != nil {
		fmt.Fprintf(errOut, "error: write %s: %v\n", c.out, err)
		return exitcode.UserError
	}
	cfg.Logger.Debug("exported tasks", "path", c.out, "format", format)
	return confirm(cfg, out)
}
