package fakerunner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeRunner(t *testing.T) {
	t.Run("new runner starts empty", func(t *testing.T) {
		runner := New()
		assert.Empty(t, runner.GetCalls())
	})

	t.Run("set and get output", func(t *testing.T) {
		runner := New()
		expectedOutput := []byte("test output")

		runner.SetOutput("systemctl", []string{"--version"}, expectedOutput)
		output, err := runner.CombinedOutput(context.Background(), "systemctl", "--version")

		assert.NoError(t, err)
		assert.Equal(t, expectedOutput, output)
	})

	t.Run("set and get error", func(t *testing.T) {
		runner := New()
		expectedErr := errors.New("test error")

		runner.SetError("failing-command", []string{}, expectedErr)
		output, err := runner.CombinedOutput(context.Background(), "failing-command")

		assert.Nil(t, output)
		assert.Equal(t, expectedErr, err)
	})

	t.Run("scripted exit code carries through errors.As", func(t *testing.T) {
		runner := New()
		runner.SetExitCode("systemctl", []string{"start", "--quiet", "app.service"}, 1)

		_, err := runner.CombinedOutput(context.Background(), "systemctl", "start", "--quiet", "app.service")
		require.Error(t, err)

		var exitErr interface{ ExitCode() int }
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 1, exitErr.ExitCode())
		assert.Equal(t, "exit status 1", err.Error())
	})

	t.Run("captures calls", func(t *testing.T) {
		runner := New()

		_, _ = runner.CombinedOutput(context.Background(), "systemctl", "daemon-reload", "--quiet")
		_, _ = runner.CombinedOutput(context.Background(), "systemctl", "start", "--quiet", "app.service")

		calls := runner.GetCalls()
		assert.Len(t, calls, 2)
		assert.Equal(t, "systemctl", calls[0].Name)
		assert.Equal(t, []string{"daemon-reload", "--quiet"}, calls[0].Args)
		assert.Equal(t, []string{"start", "--quiet", "app.service"}, calls[1].Args)
	})

	t.Run("default behavior returns empty output", func(t *testing.T) {
		runner := New()

		output, err := runner.CombinedOutput(context.Background(), "unknown-command")

		assert.NoError(t, err)
		assert.Empty(t, output)
	})

	t.Run("reset clears state", func(t *testing.T) {
		runner := New()

		runner.SetOutput("echo", []string{"test"}, []byte("output"))
		runner.SetError("fail", []string{}, errors.New("error"))
		_, _ = runner.CombinedOutput(context.Background(), "echo", "test")

		runner.Reset()

		assert.Empty(t, runner.GetCalls())

		// After reset, should return default behavior
		output, err := runner.CombinedOutput(context.Background(), "echo", "test")
		assert.NoError(t, err)
		assert.Empty(t, output)
	})
}
