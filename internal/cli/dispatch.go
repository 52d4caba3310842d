package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"ltask/internal/commands"
	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/persist"
	"ltask/internal/task"
)

// StoreFactory opens the persistence backend for cfg.
// Used to inject the backend during dispatch.
type StoreFactory func(ctx context.Context, cfg *config.Config) (persist.Backend, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  StoreFactory
	opts     []task.Option
}

// NewDispatcher creates a new dispatcher with the given registry and store
// factory. opts are applied to every task.Store the dispatcher opens.
func NewDispatcher(registry *commands.Registry, factory StoreFactory, opts ...task.Option) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
		opts:     opts,
	}
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	quiet     bool
	debug     bool
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		args = []string{"list"}
	}

	// Flags require a command, so a leading flag is an unknown command
	if _, ok := d.registry.Find(args[0]); !ok || strings.HasPrefix(args[0], "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
		return exitcode.UserError
	}

	code := exitcode.Success
	root := d.newRootCommand(out, errOut, &code)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		// Only flag parsing errors reach here; commands report their own.
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	return code
}

// newRootCommand builds the cobra tree from the registry. Each command's
// exit code is stored in *code.
func (d *Dispatcher) newRootCommand(out, errOut io.Writer, code *int) *cobra.Command {
	flags := &commonFlags{}

	root := &cobra.Command{
		Use:           "ltask",
		Short:         "A local task list",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&flags.configDir, "config", "", "override config directory")
	root.PersistentFlags().BoolVar(&flags.quiet, "quiet", false, "suppress informational output")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "print debug logs to stderr")

	root.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if cmd, ok := d.registry.Find(c.Name()); ok && c != root {
			fmt.Fprintf(out, "Usage:\n  %s\n\n%s\n", cmd.Usage(), cmd.Synopsis())
			return
		}
		fmt.Fprint(out, commands.HelpText)
	})

	for _, cmd := range d.registry.All() {
		cc := &cobra.Command{
			Use:     cmd.Name(),
			Aliases: cmd.Aliases(),
			Short:   cmd.Synopsis(),
			Args:    cobra.ArbitraryArgs,
			RunE: func(c *cobra.Command, args []string) error {
				*code = d.execute(c.Context(), cmd, flags, args, out, errOut)
				return nil
			},
		}
		cmd.RegisterFlags(cc.Flags())
		// Flags stop at the first argument, so task text may contain "-5kg".
		cc.Flags().SetInterspersed(false)

		if cmd.Name() == "help" {
			root.SetHelpCommand(cc)
			continue
		}
		root.AddCommand(cc)
	}
	return root
}

// execute builds the config, opens the store when the command needs it,
// and runs the command.
func (d *Dispatcher) execute(ctx context.Context, cmd commands.Command, flags *commonFlags, args []string, out, errOut io.Writer) int {
	cfg, err := config.New(flags.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: config error: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = flags.quiet
	cfg.Debug = flags.debug
	cfg.Logger = newLogger(errOut, flags.debug)

	var st *task.Store
	if cmd.NeedsStore() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: storage error: no backend configured")
			return exitcode.StorageError
		}

		backend, err := d.factory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage error: %s\n", err)
			return exitcode.StorageError
		}
		defer func() {
			if err := backend.Close(); err != nil {
				cfg.Logger.Warn("closing storage backend", "error", err)
			}
		}()

		opts := append([]task.Option{task.WithFilter(cfg.Filter)}, d.opts...)
		st, err = task.Open(ctx, backend, cfg.Key, opts...)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage error: %s\n", err)
			return exitcode.StorageError
		}
		cfg.Logger.Debug("store opened", "backend", cfg.Backend, "key", cfg.Key, "tasks", st.Stats().Total)
	}

	return cmd.Run(ctx, cfg, st, args, out, errOut)
}

// newLogger returns a text logger on w at Warn, or Debug when debug is set.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
