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
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/trly/unit-ops/internal/config"
)

// ConfigShowCommand represents the config show command.
type ConfigShowCommand struct{}

// NewConfigShowCommand creates a new ConfigShowCommand.
func NewConfigShowCommand() *ConfigShowCommand {
	return &ConfigShowCommand{}
}

// getApp retrieves the App from the command context, or nil when the
// command runs without the root's initialization.
func (c *ConfigShowCommand) getApp(cmd *cobra.Command) *App {
	app, _ := cmd.Context().Value(appContextKey).(*App)
	return app
}

// GetCobraCommand returns the cobra command for config show operations.
func (c *ConfigShowCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  "Display the current configuration including defaults and overrides",
		Run: func(cmd *cobra.Command, _ []string) {
			var settings *config.Settings
			if app := c.getApp(cmd); app != nil {
				settings = app.Config
			} else {
				settings = cfg
			}

			output, err := yaml.Marshal(settings)
			if err != nil {
				fmt.Printf("Error marshalling config: %v\n", err)
				return
			}
			fmt.Println(string(output))
		},
	}
}
