package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShowCommand_PrintsSettings(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	cmd := NewConfigShowCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	output, err := ExecuteCommandWithCapture(t, cmd, []string{})

	require.NoError(t, err)
	assert.Contains(t, output, "unitDir: "+app.Config.UnitDir)
	assert.Contains(t, output, "repositoryDir: "+app.Config.RepositoryDir)
	assert.Contains(t, output, "verbose: true")
}

func TestConfigShowCommand_Help(t *testing.T) {
	cmd := NewConfigShowCommand().GetCobraCommand()

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"--help"})

	require.NoError(t, err)
	assert.Contains(t, output, "Display the current configuration")
}
