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

// UnitMaskCommand represents the unit mask command.
type UnitMaskCommand struct{}

// GetCobraCommand returns the cobra command for masking a unit.
func (c *UnitMaskCommand) GetCobraCommand() *cobra.Command {
	maskCmd := &cobra.Command{
		Use:   "mask NAME [systemctl args...]",
		Short: "Mask a managed unit so it cannot be started",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runLifecycle(cmd, args, func(ctx context.Context, m *systemd.Manager, extra ...string) {
				m.Mask(ctx, extra...)
			})
		},
	}
	maskCmd.Flags().SetInterspersed(false)

	return maskCmd
}
