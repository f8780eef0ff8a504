package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/unit-ops/internal/testutil/fakerunner"
)

func TestApplyCommand_ValidationFailure(t *testing.T) {
	app := NewAppBuilder(t).WithValidator(&MockValidator{
		SystemRequirementsFunc: func() error { return errors.New("systemd not available") },
	}).Build(t)
	cmd := NewApplyCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	err := ExecuteCommand(t, cmd, []string{"-f", writeTestManifest(t, testManifest)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "systemd not available")
}

func TestApplyCommand_MissingManifest(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	cmd := NewApplyCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	err := ExecuteCommand(t, cmd, []string{"-f", filepath.Join(t.TempDir(), "missing.yaml")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest path error")
}

func TestApplyCommand_WritesUnitsAndReloads(t *testing.T) {
	runner := fakerunner.New()
	unitRepo := NewMockUnitRepo()
	app := NewAppBuilder(t).WithRunner(runner).WithUnitRepo(unitRepo).Build(t)
	manifestPath := writeTestManifest(t, testManifest)
	cmd := NewApplyCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"-f", manifestPath})

	require.NoError(t, err)
	assert.Contains(t, output, "Applied 2 units")

	content, err := os.ReadFile(app.FSService.GetUnitFilePath("web.service"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "ExecStart=/usr/bin/web --listen :8080")

	_, err = unitRepo.FindByName("web.service")
	require.NoError(t, err)
	_, err = unitRepo.FindByName("backup.timer")
	require.NoError(t, err)

	assert.Equal(t, 1, countCalls(runner, "daemon-reload"))
}

func TestApplyCommand_UnchangedUnitsSkipReload(t *testing.T) {
	runner := fakerunner.New()
	app := NewAppBuilder(t).WithRunner(runner).Build(t)
	manifestPath := writeTestManifest(t, testManifest)

	first := NewApplyCommand().GetCobraCommand()
	SetupCommandContext(first, app)
	require.NoError(t, ExecuteCommand(t, first, []string{"-f", manifestPath}))

	second := NewApplyCommand().GetCobraCommand()
	SetupCommandContext(second, app)
	require.NoError(t, ExecuteCommand(t, second, []string{"-f", manifestPath}))

	// Only the first pass changed anything on disk.
	assert.Equal(t, 1, countCalls(runner, "daemon-reload"))
}

func TestApplyCommand_EnableAndStart(t *testing.T) {
	runner := fakerunner.New()
	app := NewAppBuilder(t).WithRunner(runner).Build(t)
	manifestPath := writeTestManifest(t, testManifest)
	cmd := NewApplyCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	require.NoError(t, ExecuteCommand(t, cmd, []string{"-f", manifestPath, "--enable", "--start"}))

	calls := runner.GetCalls()
	assert.Contains(t, calls, fakerunner.Call{Name: "systemctl", Args: []string{"enable", "--quiet", "web.service"}})
	assert.Contains(t, calls, fakerunner.Call{Name: "systemctl", Args: []string{"start", "--quiet", "web.service"}})
	assert.Contains(t, calls, fakerunner.Call{Name: "systemctl", Args: []string{"enable", "--quiet", "backup.timer"}})
	assert.Contains(t, calls, fakerunner.Call{Name: "systemctl", Args: []string{"start", "--quiet", "backup.timer"}})
}

func TestApplyCommand_Help(t *testing.T) {
	cmd := NewApplyCommand().GetCobraCommand()

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"--help"})

	require.NoError(t, err)
	assert.Contains(t, output, "Write generated unit files to the unit directory")
	assert.Contains(t, output, "--enable")
	assert.Contains(t, output, "--start")
	assert.Contains(t, output, "--force")
}

// countCalls counts runner calls whose first argument is the given
// systemctl action.
func countCalls(runner *fakerunner.Runner, action string) int {
	n := 0
	for _, call := range runner.GetCalls() {
		if len(call.Args) > 0 && call.Args[0] == action {
			n++
		}
	}
	return n
}
