package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewServiceUnitDefaults(t *testing.T) {
	u, err := NewServiceUnit(UnitConfig{}, ServiceConfig{ExecStart: "/bin/app"}, InstallConfig{})
	require.NoError(t, err)

	assert.Equal(t, "root", u.Service.User)
	assert.Equal(t, RestartNo, u.Service.Restart)
	assert.Equal(t, LogInherit, u.Service.StandardOutput)
	assert.Equal(t, LogInherit, u.Service.StandardError)
	assert.Equal(t, []string{"multi-user.target"}, u.Install.WantedBy)
}

func TestNewServiceUnitKeepsExplicitValues(t *testing.T) {
	u, err := NewServiceUnit(
		UnitConfig{},
		ServiceConfig{
			ExecStart:      "/bin/app",
			User:           "appuser",
			Restart:        RestartAlways,
			StandardOutput: LogJournal,
		},
		InstallConfig{WantedBy: []string{"graphical.target"}},
	)
	require.NoError(t, err)

	assert.Equal(t, "appuser", u.Service.User)
	assert.Equal(t, RestartAlways, u.Service.Restart)
	assert.Equal(t, LogJournal, u.Service.StandardOutput)
	assert.Equal(t, LogInherit, u.Service.StandardError)
	assert.Equal(t, []string{"graphical.target"}, u.Install.WantedBy)
}

func TestNewTimerUnitDefaults(t *testing.T) {
	u, err := NewTimerUnit(UnitConfig{}, TimerConfig{OnCalendar: StringList{"@daily"}}, InstallConfig{})
	require.NoError(t, err)

	assert.Equal(t, "1min", u.Timer.AccuracySec)
	assert.Equal(t, []string{"multi-user.target"}, u.Install.WantedBy)
}

func TestInstallDefaultOnlyFillsUnsetWantedBy(t *testing.T) {
	// An explicitly empty list is a deliberate choice and stays empty;
	// only a missing value receives the default.
	u, err := NewServiceUnit(UnitConfig{}, ServiceConfig{ExecStart: "/bin/app"},
		InstallConfig{WantedBy: []string{}})
	require.NoError(t, err)
	assert.Empty(t, u.Install.WantedBy)
	assert.NotNil(t, u.Install.WantedBy)
}

func TestStringListUnmarshalYAML(t *testing.T) {
	t.Run("scalar becomes single element", func(t *testing.T) {
		var l StringList
		require.NoError(t, yaml.Unmarshal([]byte(`"@daily"`), &l))
		assert.Equal(t, StringList{"@daily"}, l)
	})

	t.Run("sequence preserved in order", func(t *testing.T) {
		var l StringList
		require.NoError(t, yaml.Unmarshal([]byte("- 10s\n- 5m 30s\n"), &l))
		assert.Equal(t, StringList{"10s", "5m 30s"}, l)
	})

	t.Run("mapping rejected", func(t *testing.T) {
		var l StringList
		assert.Error(t, yaml.Unmarshal([]byte("key: value\n"), &l))
	})
}

func TestValidationErrorShape(t *testing.T) {
	err := NewValidationError("OnCalendar", "tomorrow", "is not a valid systemd calendar expression")
	assert.Equal(t, `invalid OnCalendar "tomorrow": is not a valid systemd calendar expression`, err.Error())
	assert.True(t, IsValidationError(err))

	bare := NewValidationError("ExecStart", "", "must not be empty or whitespace")
	assert.Equal(t, "invalid ExecStart: must not be empty or whitespace", bare.Error())

	assert.False(t, IsValidationError(assert.AnError))
}
