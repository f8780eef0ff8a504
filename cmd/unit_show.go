package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// ShowOptions holds show command options.
type ShowOptions struct{}

// ShowDeps holds show dependencies.
type ShowDeps struct {
	CommonDeps
}

// ShowCommand represents the unit show command.
type ShowCommand struct{}

// NewShowCommand creates a new ShowCommand.
func NewShowCommand() *ShowCommand {
	return &ShowCommand{}
}

// getApp retrieves the App from the command context.
func (c *ShowCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for showing a unit file.
func (c *ShowCommand) GetCobraCommand() *cobra.Command {
	var opts ShowOptions

	unitShowCmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Print the on-disk unit file for a managed unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, opts, deps, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return unitShowCmd
}

// Run prints the unit file exactly as written; the contents are never
// parsed or normalized.
func (c *ShowCommand) Run(_ context.Context, app *App, _ ShowOptions, deps ShowDeps, name string) error {
	unitName := qualifyUnitName(name)
	unitPath := app.FSService.GetUnitFilePath(unitName)

	data, err := deps.FileSystem.ReadFile(unitPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no unit file for %s at %s", unitName, unitPath)
		}
		return fmt.Errorf("failed to read unit file %s: %w", unitPath, err)
	}

	fmt.Println(strings.TrimRight(string(data), "\n"))
	return nil
}

// buildDeps creates production dependencies for the show command.
func (c *ShowCommand) buildDeps(app *App) ShowDeps {
	return ShowDeps{
		CommonDeps: NewRootDeps(app),
	}
}
