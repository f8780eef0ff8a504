// Package unit defines the configuration model for systemd service and
// timer units: typed sections, field validation, and deterministic
// rendering to unit file text.
package unit

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringList accepts either a single scalar or a sequence of scalars in
// YAML. Timer schedule directives commonly appear in both forms.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	case yaml.SequenceNode:
		var ss []string
		if err := value.Decode(&ss); err != nil {
			return err
		}
		*l = StringList(ss)
		return nil
	default:
		return fmt.Errorf("cannot decode %v node into a string list", value.Kind)
	}
}

// UnitConfig holds the [Unit] section directives shared by every unit
// type. All fields are optional.
type UnitConfig struct {
	Description         string   `yaml:"Description,omitempty"`
	Documentation       []string `yaml:"Documentation,omitempty"`
	After               []string `yaml:"After,omitempty"`
	Before              []string `yaml:"Before,omitempty"`
	Requires            []string `yaml:"Requires,omitempty"`
	Wants               []string `yaml:"Wants,omitempty"`
	Conflicts           []string `yaml:"Conflicts,omitempty"`
	ConditionPathExists []string `yaml:"ConditionPathExists,omitempty"`
}

// InstallConfig holds the [Install] section directives. A nil WantedBy
// defaults to multi-user.target.
type InstallConfig struct {
	WantedBy   []string `yaml:"WantedBy,omitempty"`
	RequiredBy []string `yaml:"RequiredBy,omitempty"`
	Alias      []string `yaml:"Alias,omitempty"`
	Also       []string `yaml:"Also,omitempty"`
}

// ServiceUnit is a complete service unit definition aggregating the
// [Unit], [Service], and [Install] sections.
type ServiceUnit struct {
	Unit    UnitConfig    `yaml:"Unit,omitempty"`
	Service ServiceConfig `yaml:"Service"`
	Install InstallConfig `yaml:"Install,omitempty"`
}

// TimerUnit is a complete timer unit definition aggregating the [Unit],
// [Timer], and [Install] sections.
type TimerUnit struct {
	Unit    UnitConfig    `yaml:"Unit,omitempty"`
	Timer   TimerConfig   `yaml:"Timer"`
	Install InstallConfig `yaml:"Install,omitempty"`
}

// NewServiceUnit builds a validated ServiceUnit. Explicit values are
// checked before defaults fill the remaining fields, so an invalid
// explicit value fails even when the field has a valid default.
func NewServiceUnit(unit UnitConfig, service ServiceConfig, install InstallConfig) (*ServiceUnit, error) {
	if err := validateService(&service); err != nil {
		return nil, err
	}
	applyServiceDefaults(&service)
	applyInstallDefaults(&install)

	return &ServiceUnit{Unit: unit, Service: service, Install: install}, nil
}

// NewTimerUnit builds a validated TimerUnit following the same
// validate-then-default order as NewServiceUnit.
func NewTimerUnit(unit UnitConfig, timer TimerConfig, install InstallConfig) (*TimerUnit, error) {
	normalizeTimer(&timer)
	if err := validateTimer(&timer); err != nil {
		return nil, err
	}
	applyTimerDefaults(&timer)
	applyInstallDefaults(&install)

	return &TimerUnit{Unit: unit, Timer: timer, Install: install}, nil
}

// Validate re-checks the field rules of an already built unit.
func (u *ServiceUnit) Validate() error {
	return validateService(&u.Service)
}

// Validate re-checks the field rules of an already built timer.
func (u *TimerUnit) Validate() error {
	return validateTimer(&u.Timer)
}

func applyInstallDefaults(install *InstallConfig) {
	if install.WantedBy == nil {
		install.WantedBy = []string{"multi-user.target"}
	}
}
