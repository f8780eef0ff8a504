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
	"time"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trly/unit-ops/internal/repository"
)

// ListOptions holds list command options.
type ListOptions struct {
	UnitType string
	Output   string
}

// ListDeps holds list dependencies.
type ListDeps struct {
	CommonDeps
}

// ListCommand represents the list command.
type ListCommand struct{}

// NewListCommand creates a new ListCommand.
func NewListCommand() *ListCommand {
	return &ListCommand{}
}

// getApp retrieves the App from the command context.
func (c *ListCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

var allowedUnitTypes = []string{"service", "timer", "all"}

// validateUnitType rejects type filters outside the allowed set.
func validateUnitType(unitType string) error {
	for _, allowed := range allowedUnitTypes {
		if unitType == allowed {
			return nil
		}
	}
	return fmt.Errorf("invalid unit type %q (must be one of: service, timer, all)", unitType)
}

// GetCobraCommand returns the cobra command for listing managed units.
func (c *ListCommand) GetCobraCommand() *cobra.Command {
	var opts ListOptions

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lists units currently managed by unit-ops",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return validateUnitType(opts.UnitType)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), app, opts, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	listCmd.Flags().StringVarP(&opts.UnitType, "type", "t", "all", "Type of unit to list (service, timer, all)")
	listCmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text, json, yaml)")
	err := listCmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return allowedUnitTypes, cobra.ShellCompDirectiveNoFileComp
	})
	if err != nil {
		return listCmd
	}

	return listCmd
}

// Run executes the list command with injected dependencies.
func (c *ListCommand) Run(_ context.Context, app *App, opts ListOptions, _ ListDeps) error {
	units, err := c.findUnits(app, opts.UnitType)
	if err != nil {
		return fmt.Errorf("failed to list units: %w", err)
	}

	if opts.Output == "" || opts.Output == "text" {
		c.printTable(units)
		return nil
	}
	return PrintOutput(opts.Output, units)
}

// buildDeps creates production dependencies for the list command.
func (c *ListCommand) buildDeps(app *App) ListDeps {
	return ListDeps{
		CommonDeps: NewRootDeps(app),
	}
}

func (c *ListCommand) findUnits(app *App, unitType string) ([]repository.Unit, error) {
	if unitType == "" || unitType == "all" {
		return app.UnitRepo.FindAll()
	}
	return app.UnitRepo.FindByUnitType(unitType)
}

func (c *ListCommand) printTable(units []repository.Unit) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()
	tbl := table.New("ID", "Name", "Type", "SHA1", "Mode", "Created")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	caser := cases.Title(language.English)
	for _, u := range units {
		mode := "system"
		if u.UserMode {
			mode = "user"
		}
		tbl.AddRow(u.ID, u.Name, caser.String(u.Type), shortHash(u.SHA1Hash), mode, u.CreatedAt.Format(time.RFC3339))
	}

	tbl.Print()
}

// shortHash abbreviates a content hash for table display.
func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
