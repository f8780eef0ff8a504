package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trly/unit-ops/internal/systemd"
)

// StatusOptions holds status command options.
type StatusOptions struct{}

// StatusDeps holds status dependencies.
type StatusDeps struct {
	CommonDeps
}

// StatusCommand represents the unit status command.
type StatusCommand struct{}

// NewStatusCommand creates a new StatusCommand.
func NewStatusCommand() *StatusCommand {
	return &StatusCommand{}
}

// getApp retrieves the App from the command context.
func (c *StatusCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for checking unit status.
func (c *StatusCommand) GetCobraCommand() *cobra.Command {
	var opts StatusOptions

	unitStatusCmd := &cobra.Command{
		Use:   "status NAME",
		Short: "Show the status of a managed unit",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			return app.Validator.SystemRequirements()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, opts, deps, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return unitStatusCmd
}

// Run executes the status command with injected dependencies. The
// systemctl exit code is translated to its documented meaning and
// printed; the code itself decides nothing beyond the message.
func (c *StatusCommand) Run(ctx context.Context, app *App, _ StatusOptions, _ StatusDeps, name string) error {
	unitName := qualifyUnitName(name)
	code, _ := managerFor(app, unitName).Systemctl(ctx, systemd.ActionStatus)
	fmt.Println(systemd.Message(systemd.ActionStatus, code, unitName))
	return nil
}

// buildDeps creates production dependencies for the status command.
func (c *StatusCommand) buildDeps(app *App) StatusDeps {
	return StatusDeps{
		CommonDeps: NewRootDeps(app),
	}
}
