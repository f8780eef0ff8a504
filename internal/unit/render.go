package unit

import (
	"io"
	"strconv"
	"strings"

	sdunit "github.com/coreos/go-systemd/v22/unit"
)

// Section names in rendering order.
const (
	unitSection    = "Unit"
	serviceSection = "Service"
	timerSection   = "Timer"
	installSection = "Install"
)

// Render produces the unit file text for a service: sections in declared
// order, one Key=Value line per set field, list fields as repeated keys,
// one blank line between sections, trailing whitespace trimmed. Equal
// input always renders byte-identical output.
func (u *ServiceUnit) Render() string {
	opts := unitOptions(&u.Unit)
	opts = append(opts, serviceOptions(&u.Service)...)
	opts = append(opts, installOptions(&u.Install)...)
	return serialize(opts)
}

// Render produces the unit file text for a timer under the same rules as
// ServiceUnit.Render.
func (u *TimerUnit) Render() string {
	opts := unitOptions(&u.Unit)
	opts = append(opts, timerOptions(&u.Timer)...)
	opts = append(opts, installOptions(&u.Install)...)
	return serialize(opts)
}

// serialize hands the ordered options to the systemd unit serializer.
// Sections with no options never appear, so empty sections lose their
// header for free.
func serialize(opts []*sdunit.UnitOption) string {
	data, err := io.ReadAll(sdunit.Serialize(opts))
	if err != nil {
		// Serialize reads from an in-memory buffer; this cannot fail.
		panic(err)
	}
	return strings.TrimSpace(string(data))
}

func unitOptions(c *UnitConfig) []*sdunit.UnitOption {
	var opts []*sdunit.UnitOption
	opts = appendScalar(opts, unitSection, "Description", c.Description)
	opts = appendList(opts, unitSection, "Documentation", c.Documentation)
	opts = appendList(opts, unitSection, "After", c.After)
	opts = appendList(opts, unitSection, "Before", c.Before)
	opts = appendList(opts, unitSection, "Requires", c.Requires)
	opts = appendList(opts, unitSection, "Wants", c.Wants)
	opts = appendList(opts, unitSection, "Conflicts", c.Conflicts)
	opts = appendList(opts, unitSection, "ConditionPathExists", c.ConditionPathExists)
	return opts
}

func serviceOptions(c *ServiceConfig) []*sdunit.UnitOption {
	var opts []*sdunit.UnitOption
	opts = appendScalar(opts, serviceSection, "ExecStart", c.ExecStart)
	opts = appendList(opts, serviceSection, "ExecStartPre", c.ExecStartPre)
	opts = appendList(opts, serviceSection, "ExecStartPost", c.ExecStartPost)
	opts = appendScalar(opts, serviceSection, "ExecStop", c.ExecStop)
	opts = appendList(opts, serviceSection, "ExecStopPost", c.ExecStopPost)
	opts = appendScalar(opts, serviceSection, "ExecReload", c.ExecReload)
	opts = appendScalar(opts, serviceSection, "WorkingDirectory", c.WorkingDirectory)
	opts = appendScalar(opts, serviceSection, "User", c.User)
	opts = appendScalar(opts, serviceSection, "Group", c.Group)
	opts = appendScalar(opts, serviceSection, "Restart", string(c.Restart))
	opts = appendSeconds(opts, serviceSection, "RestartSec", c.RestartSec)
	opts = appendScalar(opts, serviceSection, "StandardOutput", string(c.StandardOutput))
	opts = appendScalar(opts, serviceSection, "StandardError", string(c.StandardError))
	opts = appendList(opts, serviceSection, "Environment", c.Environment)
	opts = appendList(opts, serviceSection, "EnvironmentFile", c.EnvironmentFile)
	opts = appendSeconds(opts, serviceSection, "TimeoutStartSec", c.TimeoutStartSec)
	opts = appendSeconds(opts, serviceSection, "TimeoutStopSec", c.TimeoutStopSec)
	opts = appendScalar(opts, serviceSection, "Type", string(c.Type))
	opts = appendScalar(opts, serviceSection, "KillMode", string(c.KillMode))
	return opts
}

func timerOptions(c *TimerConfig) []*sdunit.UnitOption {
	var opts []*sdunit.UnitOption
	opts = appendList(opts, timerSection, "OnCalendar", c.OnCalendar)
	opts = appendList(opts, timerSection, "OnActiveSec", c.OnActiveSec)
	opts = appendList(opts, timerSection, "OnBootSec", c.OnBootSec)
	opts = appendList(opts, timerSection, "OnStartupSec", c.OnStartupSec)
	opts = appendList(opts, timerSection, "OnUnitActiveSec", c.OnUnitActiveSec)
	opts = appendList(opts, timerSection, "OnUnitInactiveSec", c.OnUnitInactiveSec)
	opts = appendScalar(opts, timerSection, "Unit", c.Unit)
	opts = appendBool(opts, timerSection, "Persistent", c.Persistent)
	opts = appendBool(opts, timerSection, "WakeSystem", c.WakeSystem)
	opts = appendBool(opts, timerSection, "RemainAfterElapse", c.RemainAfterElapse)
	opts = appendScalar(opts, timerSection, "AccuracySec", c.AccuracySec)
	opts = appendScalar(opts, timerSection, "RandomizedDelaySec", c.RandomizedDelaySec)
	opts = appendBool(opts, timerSection, "FixedRandomDelay", c.FixedRandomDelay)
	return opts
}

func installOptions(c *InstallConfig) []*sdunit.UnitOption {
	var opts []*sdunit.UnitOption
	opts = appendList(opts, installSection, "WantedBy", c.WantedBy)
	opts = appendList(opts, installSection, "RequiredBy", c.RequiredBy)
	opts = appendList(opts, installSection, "Alias", c.Alias)
	opts = appendList(opts, installSection, "Also", c.Also)
	return opts
}

func appendScalar(opts []*sdunit.UnitOption, section, name, value string) []*sdunit.UnitOption {
	if value == "" {
		return opts
	}
	return append(opts, sdunit.NewUnitOption(section, name, value))
}

func appendList(opts []*sdunit.UnitOption, section, name string, values []string) []*sdunit.UnitOption {
	for _, v := range values {
		opts = append(opts, sdunit.NewUnitOption(section, name, v))
	}
	return opts
}

func appendSeconds(opts []*sdunit.UnitOption, section, name string, value *float64) []*sdunit.UnitOption {
	if value == nil {
		return opts
	}
	rendered := strconv.FormatFloat(*value, 'f', -1, 64)
	return append(opts, sdunit.NewUnitOption(section, name, rendered))
}

func appendBool(opts []*sdunit.UnitOption, section, name string, value *bool) []*sdunit.UnitOption {
	if value == nil {
		return opts
	}
	return append(opts, sdunit.NewUnitOption(section, name, strconv.FormatBool(*value)))
}
