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
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RemoveDeps holds remove dependencies.
type RemoveDeps struct {
	CommonDeps
}

// RemoveCommand represents the remove command.
type RemoveCommand struct{}

// NewRemoveCommand creates a new RemoveCommand.
func NewRemoveCommand() *RemoveCommand {
	return &RemoveCommand{}
}

// getApp retrieves the App from the command context.
func (c *RemoveCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for removing a managed unit.
func (c *RemoveCommand) GetCobraCommand() *cobra.Command {
	removeCmd := &cobra.Command{
		Use:   "remove NAME",
		Short: "Stop a managed unit and delete its unit file",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			return app.Validator.SystemRequirements()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, deps, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return removeCmd
}

// Run stops and disables the unit, deletes its file, reloads systemd,
// and drops the tracking record. Stop and disable outcomes are logged
// by the manager; removal proceeds either way.
func (c *RemoveCommand) Run(ctx context.Context, app *App, deps RemoveDeps, name string) error {
	unitName := qualifyUnitName(name)
	mgr := managerFor(app, unitName)

	mgr.Stop(ctx)
	mgr.Disable(ctx)

	unitPath := app.FSService.GetUnitFilePath(unitName)
	if err := deps.FileSystem.Remove(unitPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove unit file %s: %w", unitPath, err)
	}

	mgr.DaemonReload(ctx)

	if u, err := app.UnitRepo.FindByName(unitName); err == nil {
		if err := app.UnitRepo.Delete(u.ID); err != nil {
			return fmt.Errorf("failed to delete unit record for %s: %w", unitName, err)
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to look up unit record for %s: %w", unitName, err)
	}

	fmt.Printf("Removed %s\n", unitName)
	return nil
}

// buildDeps creates production dependencies for the remove command.
func (c *RemoveCommand) buildDeps(app *App) RemoveDeps {
	return RemoveDeps{
		CommonDeps: NewRootDeps(app),
	}
}
