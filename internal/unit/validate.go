package unit

import (
	"regexp"
	"strings"
)

// Validation patterns for timer scheduling expressions and unit
// references. OnCalendar accepts the @-shorthands, a calendar date with
// optional time where any component may be *, or a weekday with an
// optional time. Time spans are whitespace-separated terms, each either
// a number with an optional single-letter unit suffix or a H:M:S clock
// value.
var (
	onCalendarPattern = regexp.MustCompile(`^(@(yearly|annually|monthly|weekly|daily|hourly|reboot)|(\d{4}|\*)-(\d{2}|\*)-(\d{2}|\*)( (\d{2}|\*):(\d{2}|\*):(\d{2}|\*))?$|(Mon|Tue|Wed|Thu|Fri|Sat|Sun)( \d{2}:\d{2}:\d{2})?)$`)
	timeSpanPattern   = regexp.MustCompile(`^(\d+(\.\d+)?[smhdwMy]?|\d+:\d+:\d+)(\s+\d+(\.\d+)?[smhdwMy]?)*$`)
	unitNamePattern   = regexp.MustCompile(`^[a-zA-Z0-9@_\-\.]+\.(service|socket|target|path)$`)
)

func validateService(service *ServiceConfig) error {
	if strings.TrimSpace(service.ExecStart) == "" {
		return NewValidationError("ExecStart", "", "must not be empty or whitespace")
	}

	for _, env := range service.Environment {
		if !strings.Contains(env, "=") {
			return NewValidationError("Environment", env, "entries must be formatted as KEY=value")
		}
	}

	if err := validateSeconds("RestartSec", service.RestartSec); err != nil {
		return err
	}
	if err := validateSeconds("TimeoutStartSec", service.TimeoutStartSec); err != nil {
		return err
	}
	if err := validateSeconds("TimeoutStopSec", service.TimeoutStopSec); err != nil {
		return err
	}

	if err := validateEnum("Restart", string(service.Restart), restartPolicies); err != nil {
		return err
	}
	if err := validateEnum("StandardOutput", string(service.StandardOutput), logOutputs); err != nil {
		return err
	}
	if err := validateEnum("StandardError", string(service.StandardError), logOutputs); err != nil {
		return err
	}
	if err := validateEnum("Type", string(service.Type), serviceTypes); err != nil {
		return err
	}
	if err := validateEnum("KillMode", string(service.KillMode), killModes); err != nil {
		return err
	}

	return nil
}

func validateTimer(timer *TimerConfig) error {
	for _, v := range timer.OnCalendar {
		if !onCalendarPattern.MatchString(v) {
			return NewValidationError("OnCalendar", v, "is not a valid systemd calendar expression")
		}
	}

	spans := []struct {
		field  string
		values []string
	}{
		{"OnActiveSec", timer.OnActiveSec},
		{"OnBootSec", timer.OnBootSec},
		{"OnStartupSec", timer.OnStartupSec},
		{"OnUnitActiveSec", timer.OnUnitActiveSec},
		{"OnUnitInactiveSec", timer.OnUnitInactiveSec},
		{"AccuracySec", scalarSpan(timer.AccuracySec)},
		{"RandomizedDelaySec", scalarSpan(timer.RandomizedDelaySec)},
	}
	for _, span := range spans {
		for _, v := range span.values {
			if !timeSpanPattern.MatchString(v) {
				return NewValidationError(span.field, v, "is not a valid systemd time span")
			}
		}
	}

	if timer.Unit != "" && !unitNamePattern.MatchString(timer.Unit) {
		return NewValidationError("Unit", timer.Unit, "must name a .service, .socket, .target, or .path unit")
	}

	return nil
}

func validateSeconds(field string, value *float64) error {
	if value != nil && *value < 0 {
		return NewValidationError(field, "", "must be zero or greater")
	}
	return nil
}

func validateEnum(field, value string, members []string) error {
	if value == "" {
		return nil
	}
	for _, m := range members {
		if value == m {
			return nil
		}
	}
	return NewValidationError(field, value, "is not one of "+strings.Join(members, ", "))
}

// scalarSpan lifts an optional scalar into the slice form the span loop
// expects; empty means unset and produces nothing to check.
func scalarSpan(value string) []string {
	if value == "" {
		return nil
	}
	return []string{value}
}

var (
	restartPolicies = enumMembers(
		RestartNo, RestartOnSuccess, RestartOnFailure, RestartOnAbnormal,
		RestartOnWatchdog, RestartOnAbort, RestartAlways,
	)
	logOutputs = enumMembers(
		LogInherit, LogJournal, LogSyslog, LogKmsg, LogFile, LogNull,
	)
	serviceTypes = enumMembers(
		TypeSimple, TypeForking, TypeOneshot, TypeDbus, TypeNotify, TypeIdle,
	)
	killModes = enumMembers(
		KillControlGroup, KillProcess, KillMixed, KillNone,
	)
)

func enumMembers[T ~string](values ...T) []string {
	members := make([]string, len(values))
	for i, v := range values {
		members[i] = string(v)
	}
	return members
}
