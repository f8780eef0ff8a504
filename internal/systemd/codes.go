package systemd

import (
	"fmt"
	"strings"
)

// Lifecycle actions passed verbatim to systemctl.
const (
	ActionStart        = "start"
	ActionStop         = "stop"
	ActionRestart      = "restart"
	ActionReload       = "reload"
	ActionEnable       = "enable"
	ActionDisable      = "disable"
	ActionMask         = "mask"
	ActionUnmask       = "unmask"
	ActionStatus       = "status"
	ActionDaemonReload = "daemon-reload"
)

// exitCodeMessages maps each systemctl action to its documented exit
// codes and their human-readable descriptions. Codes absent from an
// action's table fall back to the generic unknown message; finer
// distinctions are deliberately not inferred from undocumented codes.
var exitCodeMessages = map[string]map[int]string{
	ActionStatus: {
		0: "Unit %s is active or running",
		1: "Unit %s is inactive but a PID file exists (possible is-failed state)",
		2: "Unit %s is inactive but a lock file exists (obsolete or unused state)",
		3: "Unit %s is inactive or not running",
		4: "Status of unit %s could not be determined (unit does not exist)",
	},
	ActionStart: {
		0: "Unit %s started successfully",
		1: "Failed to start unit %s: unit is already active or an error occurred",
	},
	ActionStop: {
		0: "Unit %s stopped successfully (now inactive)",
		1: "Failed to stop unit %s: unit is already inactive or an error occurred",
	},
	ActionEnable: {
		0: "Unit %s enabled successfully",
		1: "Failed to enable unit %s: unit does not exist or an error occurred",
	},
	ActionDisable: {
		0: "Unit %s disabled successfully",
		1: "Failed to disable unit %s: unit does not exist or an error occurred",
	},
	ActionRestart: {
		0: "Unit %s restarted successfully",
		1: "Failed to restart unit %s: unit not found or an error occurred",
	},
	ActionReload: {
		0: "Unit %s reloaded successfully",
		1: "Failed to reload unit %s: unit not found or an error occurred",
	},
	ActionMask: {
		0: "Unit %s masked successfully (cannot be started manually or automatically)",
		1: "Failed to mask unit %s: unit not found or an error occurred",
	},
	ActionUnmask: {
		0: "Unit %s unmasked successfully (can be started again)",
		1: "Failed to unmask unit %s: unit not found or an error occurred",
	},
	ActionDaemonReload: {
		0: "Systemd daemon reloaded successfully (unit files re-read)",
		1: "Failed to reload systemd daemon: insufficient privileges or a system error",
	},
}

// UnknownErrorMessage is reported for exit codes no table documents.
const UnknownErrorMessage = "Unknown error"

// Message resolves the canned description for an action's exit code,
// interpolating the unit name where the table references one.
func Message(action string, code int, unitName string) string {
	codes, ok := exitCodeMessages[action]
	if !ok {
		return UnknownErrorMessage
	}
	msg, ok := codes[code]
	if !ok {
		return UnknownErrorMessage
	}
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, unitName)
	}
	return msg
}
