package cmd

import (
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/unit-ops/internal/repository"
	"github.com/trly/unit-ops/internal/testutil/fakerunner"
)

func TestRemoveCommand_ValidationFailure(t *testing.T) {
	app := NewAppBuilder(t).WithValidator(&MockValidator{
		SystemRequirementsFunc: func() error { return errors.New("systemd not available") },
	}).Build(t)
	cmd := NewRemoveCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	err := ExecuteCommand(t, cmd, []string{"web.service"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "systemd not available")
}

func TestRemoveCommand_RequiresName(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	cmd := NewRemoveCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	err := ExecuteCommand(t, cmd, []string{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s), received 0")
}

func TestRemoveCommand_StopsAndDeletes(t *testing.T) {
	runner := fakerunner.New()
	unitRepo := NewMockUnitRepo()
	app := NewAppBuilder(t).WithRunner(runner).WithUnitRepo(unitRepo).Build(t)

	unitPath := app.FSService.GetUnitFilePath("web.service")
	require.NoError(t, os.WriteFile(unitPath, []byte("[Service]\nExecStart=/usr/bin/web\n"), 0o644))
	_, err := unitRepo.Create(&repository.Unit{Name: "web.service", Type: "service", SHA1Hash: "abc"})
	require.NoError(t, err)

	cmd := NewRemoveCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"web.service"})

	require.NoError(t, err)
	assert.Contains(t, output, "Removed web.service")

	calls := runner.GetCalls()
	assert.Contains(t, calls, fakerunner.Call{Name: "systemctl", Args: []string{"stop", "--quiet", "web.service"}})
	assert.Contains(t, calls, fakerunner.Call{Name: "systemctl", Args: []string{"disable", "--quiet", "web.service"}})
	assert.Contains(t, calls, fakerunner.Call{Name: "systemctl", Args: []string{"daemon-reload", "--quiet"}})

	_, err = os.Stat(unitPath)
	assert.True(t, os.IsNotExist(err))
	_, err = unitRepo.FindByName("web.service")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRemoveCommand_QualifiesBareNames(t *testing.T) {
	runner := fakerunner.New()
	app := NewAppBuilder(t).WithRunner(runner).Build(t)
	cmd := NewRemoveCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"web"})

	require.NoError(t, err)
	assert.Contains(t, output, "Removed web.service")
	assert.Contains(t, runner.GetCalls(), fakerunner.Call{Name: "systemctl", Args: []string{"stop", "--quiet", "web.service"}})
}

func TestRemoveCommand_IdempotentWhenNothingExists(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	cmd := NewRemoveCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	// No unit file on disk and no tracking record.
	output, err := ExecuteCommandWithCapture(t, cmd, []string{"ghost.service"})

	require.NoError(t, err)
	assert.Contains(t, output, "Removed ghost.service")
}

func TestRemoveCommand_Help(t *testing.T) {
	cmd := NewRemoveCommand().GetCobraCommand()

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"--help"})

	require.NoError(t, err)
	assert.Contains(t, output, "Stop a managed unit and delete its unit file")
}
