package unit

import "strings"

// TimerConfig holds the [Timer] section directives. Field order is the
// rendering order. The schedule fields accept a single expression or a
// list of them; AccuracySec defaults to 1min.
type TimerConfig struct {
	OnCalendar         StringList `yaml:"OnCalendar,omitempty"`
	OnActiveSec        StringList `yaml:"OnActiveSec,omitempty"`
	OnBootSec          StringList `yaml:"OnBootSec,omitempty"`
	OnStartupSec       StringList `yaml:"OnStartupSec,omitempty"`
	OnUnitActiveSec    StringList `yaml:"OnUnitActiveSec,omitempty"`
	OnUnitInactiveSec  StringList `yaml:"OnUnitInactiveSec,omitempty"`
	Unit               string     `yaml:"Unit,omitempty"`
	Persistent         *bool      `yaml:"Persistent,omitempty"`
	WakeSystem         *bool      `yaml:"WakeSystem,omitempty"`
	RemainAfterElapse  *bool      `yaml:"RemainAfterElapse,omitempty"`
	AccuracySec        string     `yaml:"AccuracySec,omitempty"`
	RandomizedDelaySec string     `yaml:"RandomizedDelaySec,omitempty"`
	FixedRandomDelay   *bool      `yaml:"FixedRandomDelay,omitempty"`
}

func normalizeTimer(timer *TimerConfig) {
	for i, v := range timer.OnCalendar {
		timer.OnCalendar[i] = strings.TrimSpace(v)
	}
}

func applyTimerDefaults(timer *TimerConfig) {
	// The default bypasses the time-span check, so it is applied after
	// validation rather than before.
	if timer.AccuracySec == "" {
		timer.AccuracySec = "1min"
	}
}
