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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trly/unit-ops/internal/manifest"
)

// RenderOptions holds render command options.
type RenderOptions struct {
	File      string
	OutputDir string
}

// RenderDeps holds render dependencies.
type RenderDeps struct {
	CommonDeps
}

// RenderCommand represents the render command.
type RenderCommand struct{}

// NewRenderCommand creates a new RenderCommand.
func NewRenderCommand() *RenderCommand {
	return &RenderCommand{}
}

// getApp retrieves the App from the command context.
func (c *RenderCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for rendering manifests.
// Rendering is pure: it never touches systemd, so no system
// requirements are checked.
func (c *RenderCommand) GetCobraCommand() *cobra.Command {
	var opts RenderOptions

	renderCmd := &cobra.Command{
		Use:   "render -f FILE",
		Short: "Validate manifests and print the generated unit files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			return c.Run(cmd.Context(), opts, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	renderCmd.Flags().StringVarP(&opts.File, "file", "f", "", "Manifest file or directory to render")
	renderCmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "Write unit files to this directory instead of stdout")
	_ = renderCmd.MarkFlagRequired("file")

	return renderCmd
}

// Run executes the render command with injected dependencies.
func (c *RenderCommand) Run(_ context.Context, opts RenderOptions, deps RenderDeps) error {
	units, err := loadManifestUnits(opts.File)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		return fmt.Errorf("no units declared in %s", opts.File)
	}

	if opts.OutputDir == "" {
		for i, built := range units {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("# %s\n%s\n", built.Name(), built.Render())
		}
		return nil
	}

	if err := deps.FileSystem.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", opts.OutputDir, err)
	}
	for _, built := range units {
		path := filepath.Join(opts.OutputDir, built.Name())
		if err := deps.FileSystem.WriteFile(path, []byte(built.Render()), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}

// buildDeps creates production dependencies for the render command.
func (c *RenderCommand) buildDeps(app *App) RenderDeps {
	return RenderDeps{
		CommonDeps: NewRootDeps(app),
	}
}

// loadManifestUnits loads one manifest file, or every manifest in a
// directory when the path is a directory.
func loadManifestUnits(path string) ([]*manifest.BuiltUnit, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("manifest path error: %s (%w)", path, err)
	}
	if info.IsDir() {
		return manifest.LoadDir(path)
	}
	return manifest.LoadFile(path)
}
