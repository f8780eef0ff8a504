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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trly/unit-ops/internal/git"
	"github.com/trly/unit-ops/internal/manifest"
)

// SyncCommand represents the sync command for unit-ops CLI.
type SyncCommand struct{}

// NewSyncCommand creates a new SyncCommand.
func NewSyncCommand() *SyncCommand {
	return &SyncCommand{}
}

// getApp retrieves the App from the command context.
func (c *SyncCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

var (
	dryRun   bool
	repoName string
	force    bool
	prune    bool
)

// GetCobraCommand returns the cobra command for sync operations.
func (c *SyncCommand) GetCobraCommand() *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronizes unit manifests from configured repositories with systemd units on the local system.",
		Long: `Synchronizes unit manifests from configured repositories with systemd units on the local system.

Repositories are defined in the unit-ops config file as a list of Repository objects.

---
repositories:
  - name: unit-ops-manifests
    url: https://github.com/trly/unit-ops-manifests.git
    ref: main
    manifestDir: manifests`,

		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if prune && repoName != "" {
				return fmt.Errorf("--prune cannot be combined with --repo: pruning requires every repository to be applied")
			}
			app := c.getApp(cmd)
			return app.Validator.SystemRequirements()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			if err := os.MkdirAll(app.Config.UnitDir, 0o750); err != nil {
				return fmt.Errorf("failed to create unit directory: %w", err)
			}

			c.syncRepositories(cmd.Context(), app)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	syncCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Perform a dry run without making any changes.")
	syncCmd.Flags().StringVarP(&repoName, "repo", "r", "", "Synchronize a single, named, repository.")
	syncCmd.Flags().BoolVarP(&force, "force", "f", false, "Force synchronization even if the repository has not changed.")
	syncCmd.Flags().BoolVar(&prune, "prune", false, "Remove managed units that no longer appear in any repository.")

	return syncCmd
}

// syncRepositories clones or updates each configured repository, loads
// its manifests, and applies the resulting units. A shared processed
// set spans all repositories so pruning on the last one sees the full
// desired state. Pruning is skipped when any repository failed, since
// an incomplete state must not sweep another repository's units.
func (c *SyncCommand) syncRepositories(ctx context.Context, app *App) {
	processedUnits := make(map[string]bool)
	failures := 0

	repos := app.Config.Repositories
	for i, repoConfig := range repos {
		if repoName != "" && repoConfig.Name != repoName {
			app.Logger.Debug("Skipping repository as it does not match the specified name", "repo", repoConfig.Name)
			continue
		}

		if dryRun {
			app.Logger.Info("Dry-run: would process repository", "name", repoConfig.Name)
			continue
		}

		app.Logger.Debug("Processing repository", "name", repoConfig.Name)

		result := app.Syncer.SyncRepo(ctx, repoConfig)
		if !result.Success {
			app.Logger.Error("Failed to sync repository", "name", repoConfig.Name, "error", result.Error)
			failures++
			continue
		}

		manifestDir := git.NewGitRepository(repoConfig, app.ConfigProvider, app.Logger).ManifestPath()
		app.Logger.Debug("Looking for unit manifests", "dir", manifestDir)

		units, err := manifest.LoadDir(manifestDir)
		if err != nil {
			app.Logger.Error("Failed to load manifests from repository", "name", repoConfig.Name, "error", err)
			if repoConfig.ManifestDir != "" {
				app.Logger.Info("Check that the manifestDir path exists in the repository", "repository", repoConfig.Name, "expectedPath", repoConfig.ManifestDir)
			}
			failures++
			continue
		}

		isLastRepo := i == len(repos)-1

		processor := manifest.NewProcessor(app.ConfigProvider, app.Logger, app.Runner, app.UnitRepo, force).
			WithExistingProcessedUnits(processedUnits)

		err = processor.Apply(ctx, units, manifest.ApplyOptions{
			Prune:          prune && isLastRepo && failures == 0,
			RestartChanged: true,
		})
		if err != nil {
			app.Logger.Error("Failed to apply units from repository", "name", repoConfig.Name, "error", err)
		}

		// Failed units are still marked processed, so harvest the set
		// unconditionally to keep them protected from pruning.
		processedUnits = processor.GetProcessedUnits()
	}

	if prune && failures > 0 {
		app.Logger.Warn("Skipped pruning because some repositories failed", "failures", failures)
	}
}
