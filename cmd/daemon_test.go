package cmd

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockSyncPerformer records sync passes without running the real sync.
type MockSyncPerformer struct {
	PerformSyncFunc func(ctx context.Context, app *App, syncCmd *SyncCommand)
	CallCount       int
}

func (m *MockSyncPerformer) PerformSync(ctx context.Context, app *App, syncCmd *SyncCommand) {
	m.CallCount++
	if m.PerformSyncFunc != nil {
		m.PerformSyncFunc(ctx, app, syncCmd)
	}
}

// newDaemonDeps builds daemon dependencies with a silent notifier.
func newDaemonDeps(app *App, clk clock.Clock) DaemonDeps {
	return DaemonDeps{
		CommonDeps: CommonDeps{
			Clock:      clk,
			FileSystem: &FileSystemOps{},
			Logger:     app.Logger,
		},
		Notify: func(bool, string) (bool, error) { return false, nil },
	}
}

func TestDaemonCommand_ValidationFailure(t *testing.T) {
	app := NewAppBuilder(t).WithValidator(&MockValidator{
		SystemRequirementsFunc: func() error { return errors.New("systemd not available") },
	}).Build(t)
	cmd := NewDaemonCommand().GetCobraCommand()
	SetupCommandContext(cmd, app)

	err := ExecuteCommand(t, cmd, []string{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "systemd not available")
}

func TestDaemonCommand_DirectoryCreationFailure(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	performer := &MockSyncPerformer{}
	daemonCmd := &DaemonCommand{syncPerformer: performer}

	deps := newDaemonDeps(app, clock.New())
	deps.FileSystem = &FileSystemOps{
		MkdirAllFunc: func(string, fs.FileMode) error { return errors.New("permission denied") },
	}

	err := daemonCmd.Run(context.Background(), app, DaemonOptions{}, deps)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating unit directory")
	assert.Equal(t, 0, performer.CallCount)
}

func TestDaemonCommand_InitialSync(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	performer := &MockSyncPerformer{}
	daemonCmd := &DaemonCommand{syncPerformer: performer}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := daemonCmd.Run(ctx, app, DaemonOptions{SyncInterval: time.Hour}, newDaemonDeps(app, clock.New()))

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, performer.CallCount)
}

func TestDaemonCommand_SystemdNotifications(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	daemonCmd := &DaemonCommand{syncPerformer: &MockSyncPerformer{}}

	var states []string
	deps := newDaemonDeps(app, clock.New())
	deps.Notify = func(_ bool, state string) (bool, error) {
		states = append(states, state)
		return true, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := daemonCmd.Run(ctx, app, DaemonOptions{SyncInterval: time.Hour}, deps)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, states, daemon.SdNotifyReady)
	assert.Contains(t, states, daemon.SdNotifyStopping)
}

func TestDaemonCommand_NotificationErrorTolerated(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	daemonCmd := &DaemonCommand{syncPerformer: &MockSyncPerformer{}}

	deps := newDaemonDeps(app, clock.New())
	deps.Notify = func(bool, string) (bool, error) { return false, errors.New("not running under systemd") }

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := daemonCmd.Run(ctx, app, DaemonOptions{SyncInterval: time.Hour}, deps)

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDaemonCommand_SyncIntervalOverride(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	daemonCmd := &DaemonCommand{syncPerformer: &MockSyncPerformer{}}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := daemonCmd.Run(ctx, app, DaemonOptions{SyncInterval: 2 * time.Minute}, newDaemonDeps(app, clock.New()))

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 2*time.Minute, app.Config.SyncInterval)
}

func TestDaemonCommand_ScheduledSync(t *testing.T) {
	app := NewAppBuilder(t).Build(t)

	syncCalls := make(chan struct{}, 10)
	performer := &MockSyncPerformer{
		PerformSyncFunc: func(context.Context, *App, *SyncCommand) { syncCalls <- struct{}{} },
	}
	daemonCmd := &DaemonCommand{syncPerformer: performer}

	mockClock := clock.NewMock()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- daemonCmd.Run(ctx, app, DaemonOptions{SyncInterval: time.Minute}, newDaemonDeps(app, mockClock))
	}()

	select {
	case <-syncCalls:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial sync")
	}

	// The loop's ticker is created on the daemon goroutine, so keep
	// nudging the mock clock until the tick lands.
	scheduled := false
	deadline := time.Now().Add(2 * time.Second)
	for !scheduled && time.Now().Before(deadline) {
		mockClock.Add(time.Minute)
		select {
		case <-syncCalls:
			scheduled = true
		default:
			time.Sleep(time.Millisecond)
		}
	}
	require.True(t, scheduled, "scheduled sync never fired")

	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)
}

func TestDaemonCommand_Help(t *testing.T) {
	cmd := NewDaemonCommand().GetCobraCommand()

	output, err := ExecuteCommandWithCapture(t, cmd, []string{"--help"})

	require.NoError(t, err)
	assert.Contains(t, output, "Run unit-ops as a daemon")
	assert.Contains(t, output, "--sync-interval")
	assert.Contains(t, output, "--repo")
	assert.Contains(t, output, "--force")
	assert.Contains(t, output, "--prune")
}

func TestDaemonCommand_Flags(t *testing.T) {
	cmd := NewDaemonCommand().GetCobraCommand()

	syncInterval := cmd.Flags().Lookup("sync-interval")
	require.NotNil(t, syncInterval)
	assert.Equal(t, "5m0s", syncInterval.DefValue)

	repo := cmd.Flags().Lookup("repo")
	require.NotNil(t, repo)
	assert.Equal(t, "", repo.DefValue)

	force := cmd.Flags().Lookup("force")
	require.NotNil(t, force)
	assert.Equal(t, "false", force.DefValue)

	prune := cmd.Flags().Lookup("prune")
	require.NotNil(t, prune)
	assert.Equal(t, "false", prune.DefValue)
}
