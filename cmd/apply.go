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

	"github.com/spf13/cobra"

	"github.com/trly/unit-ops/internal/manifest"
)

// ApplyOptions holds apply command options.
type ApplyOptions struct {
	File   string
	Enable bool
	Start  bool
	Force  bool
}

// ApplyCommand represents the apply command.
type ApplyCommand struct{}

// NewApplyCommand creates a new ApplyCommand.
func NewApplyCommand() *ApplyCommand {
	return &ApplyCommand{}
}

// getApp retrieves the App from the command context.
func (c *ApplyCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for applying manifests.
func (c *ApplyCommand) GetCobraCommand() *cobra.Command {
	var opts ApplyOptions

	applyCmd := &cobra.Command{
		Use:   "apply -f FILE",
		Short: "Write generated unit files to the unit directory",
		Long: `Write generated unit files to the unit directory.

Units whose on-disk content already matches are skipped. When anything
changed, systemd is asked to reload its unit definitions once. Applied
units are recorded in the tracking database so list, remove, and sync
know which files unit-ops owns.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			return app.Validator.SystemRequirements()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			return c.Run(cmd.Context(), app, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	applyCmd.Flags().StringVarP(&opts.File, "file", "f", "", "Manifest file or directory to apply")
	applyCmd.Flags().BoolVar(&opts.Enable, "enable", false, "Enable each applied unit at boot")
	applyCmd.Flags().BoolVar(&opts.Start, "start", false, "Start each applied unit")
	applyCmd.Flags().BoolVar(&opts.Force, "force", false, "Rewrite unit files even when the content is unchanged")
	_ = applyCmd.MarkFlagRequired("file")

	return applyCmd
}

// Run executes the apply command. Enable and start outcomes are logged
// by the unit managers; a failing unit does not stop the others.
func (c *ApplyCommand) Run(ctx context.Context, app *App, opts ApplyOptions) error {
	units, err := loadManifestUnits(opts.File)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		return fmt.Errorf("no units declared in %s", opts.File)
	}

	processor := manifest.NewProcessor(app.ConfigProvider, app.Logger, app.Runner, app.UnitRepo, opts.Force)
	if err := processor.Apply(ctx, units, manifest.ApplyOptions{}); err != nil {
		return err
	}

	for _, built := range units {
		mgr := managerFor(app, built.Name())
		if opts.Enable {
			mgr.Enable(ctx)
		}
		if opts.Start {
			mgr.Start(ctx)
		}
	}

	fmt.Printf("Applied %d units from %s\n", len(units), opts.File)
	return nil
}
