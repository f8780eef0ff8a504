package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommand_RequiresFile(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	cmd := NewRenderCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	err := ExecuteCommand(t, cmd, []string{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"file\" not set")
}

func TestRenderCommand_MissingManifest(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	cmd := NewRenderCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	err := ExecuteCommand(t, cmd, []string{"-f", filepath.Join(t.TempDir(), "missing.yaml")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest path error")
}

func TestRenderCommand_PrintsToStdout(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	manifestPath := writeTestManifest(t, testManifest)
	cmd := NewRenderCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"-f", manifestPath})

	require.NoError(t, err)
	assert.Contains(t, output, "# web.service")
	assert.Contains(t, output, "ExecStart=/usr/bin/web --listen :8080")
	assert.Contains(t, output, "# backup.timer")
	assert.Contains(t, output, "OnCalendar=@daily")
}

func TestRenderCommand_WritesToOutputDir(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	manifestPath := writeTestManifest(t, testManifest)
	outputDir := filepath.Join(t.TempDir(), "rendered")
	cmd := NewRenderCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"-f", manifestPath, "-o", outputDir})

	require.NoError(t, err)
	assert.Contains(t, output, "Wrote "+filepath.Join(outputDir, "web.service"))
	assert.Contains(t, output, "Wrote "+filepath.Join(outputDir, "backup.timer"))

	content, err := os.ReadFile(filepath.Join(outputDir, "web.service"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[Service]")
	assert.Contains(t, string(content), "ExecStart=/usr/bin/web --listen :8080")

	content, err = os.ReadFile(filepath.Join(outputDir, "backup.timer"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[Timer]")
}

func TestRenderCommand_EmptyManifest(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	manifestPath := writeTestManifest(t, "units: []\n")
	cmd := NewRenderCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	err := ExecuteCommand(t, cmd, []string{"-f", manifestPath})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no units declared")
}

func TestRenderCommand_Help(t *testing.T) {
	cmd := NewRenderCommand().GetCobraCommand()

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"--help"})

	require.NoError(t, err)
	assert.Contains(t, output, "Validate manifests and print the generated unit files")
	assert.Contains(t, output, "--output-dir")
}
