package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/unit-ops/internal/testutil/fakerunner"
)

func TestStatusCommand_ValidationFailure(t *testing.T) {
	app := NewAppBuilder(t).
		WithValidator(&MockValidator{
			SystemRequirementsFunc: func() error {
				return errors.New("systemd not found")
			},
		}).
		Build(t)

	cmd := NewStatusCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	err := cmd.PreRunE(cmd, []string{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "systemd not found")
}

func TestStatusCommand_ActiveUnit(t *testing.T) {
	runner := fakerunner.New()
	app := NewAppBuilder(t).WithRunner(runner).Build(t)

	cmd := NewStatusCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"web.service"})
	require.NoError(t, err)
	assert.Contains(t, output, "Unit web.service is active or running")
}

func TestStatusCommand_InactiveUnit(t *testing.T) {
	runner := fakerunner.New()
	runner.SetExitCode("systemctl", []string{"status", "--quiet", "web.service"}, 3)
	app := NewAppBuilder(t).WithRunner(runner).Build(t)

	cmd := NewStatusCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"web.service"})
	require.NoError(t, err)
	assert.Contains(t, output, "Unit web.service is inactive or not running")
}

func TestStatusCommand_UnknownUnit(t *testing.T) {
	runner := fakerunner.New()
	runner.SetExitCode("systemctl", []string{"status", "--quiet", "ghost.service"}, 4)
	app := NewAppBuilder(t).WithRunner(runner).Build(t)

	cmd := NewStatusCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"ghost"})
	require.NoError(t, err)
	assert.Contains(t, output, "Status of unit ghost.service could not be determined")
}

func TestStatusCommand_Help(t *testing.T) {
	cmd := NewStatusCommand().GetCobraCommand()
	output, err := ExecuteCommandWithCapture(t, cmd, []string{"--help"})

	require.NoError(t, err)
	assert.Contains(t, output, "Show the status of a managed unit")
}
