// Package systemd persists rendered unit files under the configured
// unit directory and drives unit lifecycle through the systemctl
// command. Lifecycle state is owned entirely by systemd; the only
// signal read back is the process exit code.
package systemd

import (
	"context"
	"errors"

	"github.com/trly/unit-ops/internal/config"
	"github.com/trly/unit-ops/internal/execx"
	"github.com/trly/unit-ops/internal/fs"
	"github.com/trly/unit-ops/internal/log"
)

const systemctlCommand = "systemctl"

// Unit type tags used in diagnostics. Behavior never branches on them.
const (
	UnitTypeService = "service"
	UnitTypeTimer   = "timer"
)

// Manager owns a single named unit: it writes the unit file and wraps
// systemctl operations addressed at that unit.
type Manager struct {
	unitName       string
	unitType       string
	configProvider config.Provider
	logger         log.Logger
	runner         execx.Runner
	fsService      *fs.Service
}

// NewServiceManager creates a Manager for a service unit. unitName is
// the complete unit name including the .service suffix.
func NewServiceManager(unitName string, configProvider config.Provider, logger log.Logger, runner execx.Runner) *Manager {
	return newManager(unitName, UnitTypeService, configProvider, logger, runner)
}

// NewTimerManager creates a Manager for a timer unit. unitName is the
// complete unit name including the .timer suffix.
func NewTimerManager(unitName string, configProvider config.Provider, logger log.Logger, runner execx.Runner) *Manager {
	return newManager(unitName, UnitTypeTimer, configProvider, logger, runner)
}

func newManager(unitName, unitType string, configProvider config.Provider, logger log.Logger, runner execx.Runner) *Manager {
	return &Manager{
		unitName:       unitName,
		unitType:       unitType,
		configProvider: configProvider,
		logger:         logger,
		runner:         runner,
		fsService:      fs.NewServiceWithLogger(configProvider, logger),
	}
}

// UnitName returns the managed unit's name.
func (m *Manager) UnitName() string {
	return m.unitName
}

// UnitType returns the diagnostic unit type tag.
func (m *Manager) UnitType() string {
	return m.unitType
}

// UnitPath returns the file path the unit is written to.
func (m *Manager) UnitPath() string {
	return m.fsService.GetUnitFilePath(m.unitName)
}

// Create writes rendered unit content to the unit path and reports
// success. Failures are logged and reported as false, never raised:
// permission problems get the root hint, anything else a generic write
// failure with its cause. The write is a plain whole-file write, so a
// failure can leave a partial file behind.
func (m *Manager) Create(content string) bool {
	path := m.UnitPath()
	if err := m.fsService.WriteUnitFile(path, content); err != nil {
		if IsPermissionDenied(err) {
			m.logger.Error("Root privileges are required to write unit files", "path", path)
		} else {
			m.logger.Error("Failed to create unit",
				"error", NewWriteError(m.unitName, m.unitType, path, err))
		}
		return false
	}

	m.logger.Debug("Unit created successfully", "type", m.unitType, "unit", m.unitName)
	return true
}

// Systemctl invokes one systemctl action against the unit and returns
// the raw exit code alongside the runner error, for callers that need
// the code itself rather than the logged outcome. The unit name is
// always the final argument, after --quiet; extra arguments go between
// the action and --quiet.
func (m *Manager) Systemctl(ctx context.Context, action string, extra ...string) (int, error) {
	args := m.systemctlArgs(action, true, extra...)
	_, err := m.runner.CombinedOutput(ctx, systemctlCommand, args...)
	return exitCode(err), err
}

// Start starts the unit and logs the mapped outcome.
func (m *Manager) Start(ctx context.Context, extra ...string) {
	m.run(ctx, ActionStart, extra...)
}

// Stop stops the unit and logs the mapped outcome.
func (m *Manager) Stop(ctx context.Context, extra ...string) {
	m.run(ctx, ActionStop, extra...)
}

// Restart restarts the unit and logs the mapped outcome.
func (m *Manager) Restart(ctx context.Context, extra ...string) {
	m.run(ctx, ActionRestart, extra...)
}

// Reload reloads the unit's configuration and logs the mapped outcome.
func (m *Manager) Reload(ctx context.Context, extra ...string) {
	m.run(ctx, ActionReload, extra...)
}

// Enable enables the unit and logs the mapped outcome.
func (m *Manager) Enable(ctx context.Context, extra ...string) {
	m.run(ctx, ActionEnable, extra...)
}

// Disable disables the unit and logs the mapped outcome.
func (m *Manager) Disable(ctx context.Context, extra ...string) {
	m.run(ctx, ActionDisable, extra...)
}

// Mask masks the unit and logs the mapped outcome.
func (m *Manager) Mask(ctx context.Context, extra ...string) {
	m.run(ctx, ActionMask, extra...)
}

// Unmask unmasks the unit and logs the mapped outcome.
func (m *Manager) Unmask(ctx context.Context, extra ...string) {
	m.run(ctx, ActionUnmask, extra...)
}

// Status queries the unit's status and logs the mapped outcome.
func (m *Manager) Status(ctx context.Context, extra ...string) {
	m.run(ctx, ActionStatus, extra...)
}

// DaemonReload asks systemd to re-read unit files. The request
// addresses the manager process itself, so no unit name is appended.
func (m *Manager) DaemonReload(ctx context.Context) {
	args := m.systemctlArgs(ActionDaemonReload, false)
	_, err := m.runner.CombinedOutput(ctx, systemctlCommand, args...)
	m.logOutcome(ActionDaemonReload, exitCode(err))
}

// DaemonReload is the package-level form of Manager.DaemonReload for
// callers that act on a batch of units rather than a single one.
func DaemonReload(ctx context.Context, configProvider config.Provider, logger log.Logger, runner execx.Runner) {
	newManager("", "", configProvider, logger, runner).DaemonReload(ctx)
}

func (m *Manager) run(ctx context.Context, action string, extra ...string) {
	code, _ := m.Systemctl(ctx, action, extra...)
	m.logOutcome(action, code)
}

// logOutcome records the canned message for an exit code: debug for
// success, warning with the code attached for everything else.
func (m *Manager) logOutcome(action string, code int) {
	msg := Message(action, code, m.unitName)
	if code == 0 {
		m.logger.Debug(msg)
		return
	}
	m.logger.Warn(msg, "action", action, "unit", m.unitName, "code", code)
}

func (m *Manager) systemctlArgs(action string, withUnit bool, extra ...string) []string {
	var args []string
	if m.configProvider.GetConfig().UserMode {
		args = append(args, "--user")
	}
	args = append(args, action)
	args = append(args, extra...)
	args = append(args, "--quiet")
	if withUnit {
		args = append(args, m.unitName)
	}
	return args
}

// exitCode maps a runner error to a systemctl exit code: nil is 0, and
// errors that carry no code (a missing binary, a canceled context)
// become -1, which no message table contains.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
