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
	"strings"

	"github.com/spf13/cobra"

	"github.com/trly/unit-ops/internal/systemd"
)

// UnitCommand represents the unit command group for unit-ops CLI.
type UnitCommand struct{}

// GetCobraCommand returns the cobra command grouping unit lifecycle
// operations.
func (c *UnitCommand) GetCobraCommand() *cobra.Command {
	unitCmd := &cobra.Command{
		Use:   "unit",
		Short: "Manage individual systemd units",
	}

	unitCmd.AddCommand(
		(&UnitStartCommand{}).GetCobraCommand(),
		(&UnitStopCommand{}).GetCobraCommand(),
		(&UnitRestartCommand{}).GetCobraCommand(),
		(&UnitReloadCommand{}).GetCobraCommand(),
		(&UnitEnableCommand{}).GetCobraCommand(),
		(&UnitDisableCommand{}).GetCobraCommand(),
		(&UnitMaskCommand{}).GetCobraCommand(),
		(&UnitUnmaskCommand{}).GetCobraCommand(),
		NewStatusCommand().GetCobraCommand(),
		NewShowCommand().GetCobraCommand(),
	)

	return unitCmd
}

// knownUnitSuffixes are the unit types systemctl operations may target.
var knownUnitSuffixes = []string{".service", ".timer", ".socket", ".target", ".path"}

// qualifyUnitName completes a bare unit name with the .service suffix.
// Names that already carry a unit suffix pass through unchanged.
func qualifyUnitName(name string) string {
	for _, suffix := range knownUnitSuffixes {
		if strings.HasSuffix(name, suffix) {
			return name
		}
	}
	return name + ".service"
}

// managerFor returns a systemd manager for a complete unit name,
// picking the constructor by suffix.
func managerFor(app *App, name string) *systemd.Manager {
	if strings.HasSuffix(name, ".timer") {
		return systemd.NewTimerManager(name, app.ConfigProvider, app.Logger, app.Runner)
	}
	return systemd.NewServiceManager(name, app.ConfigProvider, app.Logger, app.Runner)
}

// runLifecycle resolves the target unit and invokes one lifecycle
// operation, passing remaining arguments through to systemctl. The
// lifecycle commands disable interspersed flag parsing, so dash
// arguments after the unit name arrive here instead of failing as
// unknown flags.
func runLifecycle(cmd *cobra.Command, args []string, op func(context.Context, *systemd.Manager, ...string)) {
	app := cmd.Context().Value(appContextKey).(*App)
	name := qualifyUnitName(args[0])
	op(cmd.Context(), managerFor(app, name), args[1:]...)
}
