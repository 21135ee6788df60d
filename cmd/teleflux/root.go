package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/teleflux/teleflux/internal/di"
	notifyService "github.com/teleflux/teleflux/internal/modules/notify/service"
	syncService "github.com/teleflux/teleflux/internal/modules/sync/service"
	"github.com/teleflux/teleflux/internal/shared/config"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ConfigPath  string
	SessionFile string
	Quiet       bool
}

// NewRootCommand creates the teleflux root command. Running it with no
// subcommand performs one synchronization pass.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "teleflux",
		Short: "Sync Telegram folders to Miniflux categories",
		Long: `Teleflux mirrors your Telegram folder structure into Miniflux:
each mapped folder becomes a category and each broadcast channel in it
becomes an RSSHub feed. Runs are one-shot and idempotent; schedule them
with cron or a systemd timer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), opts, dryRun)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to config file (default: search working directory)")
	cmd.PersistentFlags().StringVarP(&opts.SessionFile, "session", "s", "", "override the telegram session file path")
	cmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress console output, keep JSON errors on stderr")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute and report changes without applying them")

	cmd.AddCommand(NewListFoldersCommand(opts))

	return cmd
}

// Execute runs the root command with signal-aware cancellation.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

func runSync(ctx context.Context, opts *RootOptions, dryRun bool) error {
	injector, err := setup(opts)
	if err != nil {
		return err
	}
	defer shutdown(injector)

	service, err := do.Invoke[*syncService.Service](injector)
	if err != nil {
		return err
	}

	summary, err := service.Run(ctx, dryRun)
	if err != nil {
		if ctx.Err() != nil {
			return &ExitError{Code: ExitInterrupted, Err: err}
		}
		return err
	}

	notifier := do.MustInvoke[*notifyService.Notifier](injector)
	notifier.Notify(ctx, summary)

	if summary.Failed > 0 {
		slog.Warn("Synchronization completed with failures", "failed", summary.Failed)
	}
	return nil
}

// setup builds the container and resolves config, applying flag
// overrides before any collaborator is constructed.
func setup(opts *RootOptions) (do.Injector, error) {
	injector, err := di.Setup(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ExitError{Code: ExitConfigMissing, Err: err}
		}
		return nil, &ExitError{Code: ExitConfigInvalid, Err: err}
	}

	if opts.SessionFile != "" {
		cfg.Telegram.SessionFile = opts.SessionFile
	}
	setupLogging(cfg.Logging.SlogLevel(), opts.Quiet || cfg.Logging.Quiet)

	return injector, nil
}

func shutdown(injector do.Injector) {
	if err := di.Shutdown(injector); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}
}
