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

	"github.com/spf13/cobra"

	"github.com/trly/unit-ops/internal/systemd"
)

// UnitReloadCommand represents the unit reload command.
type UnitReloadCommand struct{}

// GetCobraCommand returns the cobra command for reloading a unit.
func (c *UnitReloadCommand) GetCobraCommand() *cobra.Command {
	reloadCmd := &cobra.Command{
		Use:   "reload NAME [systemctl args...]",
		Short: "Reload a managed unit's configuration",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runLifecycle(cmd, args, func(ctx context.Context, m *systemd.Manager, extra ...string) {
				m.Reload(ctx, extra...)
			})
		},
	}
	reloadCmd.Flags().SetInterspersed(false)

	return reloadCmd
}
