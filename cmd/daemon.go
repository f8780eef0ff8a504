/*
Copyright © 2025 Travis Lyons travis.lyons@gmail.com

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"

	"github.com/trly/unit-ops/internal/config"
)

// watchdogInterval is how often the daemon pings the systemd watchdog.
const watchdogInterval = 30 * time.Second

// DaemonOptions holds the daemon command options.
type DaemonOptions struct {
	SyncInterval time.Duration
}

// DaemonDeps holds daemon dependencies.
type DaemonDeps struct {
	CommonDeps
	Notify NotifyFunc
}

// SyncPerformer abstracts a single sync pass so the daemon loop can be
// tested without touching real repositories.
type SyncPerformer interface {
	PerformSync(ctx context.Context, app *App, syncCmd *SyncCommand)
}

// DaemonCommand represents the daemon command for unit-ops CLI.
type DaemonCommand struct {
	syncPerformer SyncPerformer
}

// NewDaemonCommand creates a new DaemonCommand.
func NewDaemonCommand() *DaemonCommand {
	return &DaemonCommand{syncPerformer: &defaultSyncPerformer{}}
}

// getApp retrieves the App from the command context.
func (c *DaemonCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

var (
	daemonSyncInterval time.Duration
	daemonRepoName     string
	daemonForce        bool
	daemonPrune        bool
)

// GetCobraCommand returns the cobra command for daemon operations.
func (c *DaemonCommand) GetCobraCommand() *cobra.Command {
	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run unit-ops as a daemon with periodic synchronization",
		Long: `Run unit-ops as a daemon with periodic synchronization of configured repositories.

The daemon performs an initial synchronization and then keeps running,
syncing repositories at the specified interval. This is ideal for
continuous deployment scenarios where units should track their
repositories automatically.

The daemon integrates with systemd, sending readiness and watchdog
notifications when running under systemd supervision.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			return app.Validator.SystemRequirements()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			opts := DaemonOptions{SyncInterval: daemonSyncInterval}

			err := c.Run(cmd.Context(), app, opts, c.buildDeps(app))
			if errors.Is(err, context.Canceled) {
				// SIGINT/SIGTERM shutdown is a clean exit.
				return nil
			}
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	daemonCmd.Flags().DurationVarP(&daemonSyncInterval, "sync-interval", "i", config.DefaultSyncInterval, "Interval between synchronization checks")
	daemonCmd.Flags().StringVarP(&daemonRepoName, "repo", "r", "", "Synchronize a single, named, repository")
	daemonCmd.Flags().BoolVarP(&daemonForce, "force", "f", false, "Force synchronization even if repository has not changed")
	daemonCmd.Flags().BoolVar(&daemonPrune, "prune", false, "Remove managed units that no longer appear in any repository")

	return daemonCmd
}

// buildDeps creates production dependencies for the daemon command.
func (c *DaemonCommand) buildDeps(app *App) DaemonDeps {
	return DaemonDeps{
		CommonDeps: NewRootDeps(app),
		Notify:     daemon.SdNotify,
	}
}

// Run performs the initial sync and then drives the periodic sync loop
// until the context is canceled, returning the context error. The clock
// is injected so tests can run the loop without waiting on wall time.
func (c *DaemonCommand) Run(ctx context.Context, app *App, opts DaemonOptions, deps DaemonDeps) error {
	if err := deps.FileSystem.MkdirAll(app.Config.UnitDir, 0o750); err != nil {
		return fmt.Errorf("creating unit directory %s: %w", app.Config.UnitDir, err)
	}

	if opts.SyncInterval > 0 {
		app.Config.SyncInterval = opts.SyncInterval
	}
	if app.Config.SyncInterval <= 0 {
		app.Config.SyncInterval = config.DefaultSyncInterval
	}

	// Create sync command instance for reuse across passes
	syncCmd := NewSyncCommand()

	if app.Config.Verbose {
		app.Logger.Info("Performing initial sync")
	}
	c.syncPerformer.PerformSync(ctx, app, syncCmd)

	return c.runDaemon(ctx, app, syncCmd, deps)
}

// runDaemon starts the daemon loop with periodic sync operations.
func (c *DaemonCommand) runDaemon(ctx context.Context, app *App, syncCmd *SyncCommand, deps DaemonDeps) error {
	app.Logger.Info("Starting sync daemon", "interval", app.Config.SyncInterval)

	// Notify systemd that the daemon is ready
	if sent, err := deps.Notify(false, daemon.SdNotifyReady); err != nil {
		app.Logger.Warn("Failed to notify systemd of readiness", "error", err)
	} else if sent {
		app.Logger.Info("Notified systemd that daemon is ready")
	}

	ticker := deps.Clock.Ticker(app.Config.SyncInterval)
	defer ticker.Stop()

	watchdogTicker := deps.Clock.Ticker(watchdogInterval)
	defer watchdogTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			if _, err := deps.Notify(false, daemon.SdNotifyStopping); err != nil {
				app.Logger.Debug("Failed to notify systemd of shutdown", "error", err)
			}
			app.Logger.Info("Sync daemon stopping")
			return ctx.Err()
		case <-ticker.C:
			app.Logger.Debug("Starting scheduled sync")
			c.syncPerformer.PerformSync(ctx, app, syncCmd)
		case <-watchdogTicker.C:
			if sent, err := deps.Notify(false, daemon.SdNotifyWatchdog); err != nil {
				app.Logger.Debug("Failed to send watchdog notification", "error", err)
			} else if sent {
				app.Logger.Debug("Sent watchdog notification to systemd")
			}
		}
	}
}

// defaultSyncPerformer runs the real sync command for each pass.
type defaultSyncPerformer struct{}

// PerformSync executes a single sync pass with the daemon's flag values.
func (p *defaultSyncPerformer) PerformSync(ctx context.Context, app *App, syncCmd *SyncCommand) {
	// The sync command reads package-level flags; swap them for the
	// duration of the pass.
	oldRepoName := repoName
	oldForce := force
	oldPrune := prune

	repoName = daemonRepoName
	force = daemonForce
	prune = daemonPrune

	syncCmd.syncRepositories(ctx, app)

	repoName = oldRepoName
	force = oldForce
	prune = oldPrune
}
