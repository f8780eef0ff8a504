package unit

// RestartPolicy enumerates the values accepted by the Restart=
// directive.
type RestartPolicy string

// Restart policies understood by systemd.
const (
	RestartNo         RestartPolicy = "no"
	RestartOnSuccess  RestartPolicy = "on-success"
	RestartOnFailure  RestartPolicy = "on-failure"
	RestartOnAbnormal RestartPolicy = "on-abnormal"
	RestartOnWatchdog RestartPolicy = "on-watchdog"
	RestartOnAbort    RestartPolicy = "on-abort"
	RestartAlways     RestartPolicy = "always"
)

// LogOutput enumerates the values accepted by the StandardOutput= and
// StandardError= directives.
type LogOutput string

// Output destinations understood by systemd.
const (
	LogInherit LogOutput = "inherit"
	LogJournal LogOutput = "journal"
	LogSyslog  LogOutput = "syslog"
	LogKmsg    LogOutput = "kmsg"
	LogFile    LogOutput = "file"
	LogNull    LogOutput = "null"
)

// ServiceType enumerates the values accepted by the Type= directive.
type ServiceType string

// Service startup types understood by systemd.
const (
	TypeSimple  ServiceType = "simple"
	TypeForking ServiceType = "forking"
	TypeOneshot ServiceType = "oneshot"
	TypeDbus    ServiceType = "dbus"
	TypeNotify  ServiceType = "notify"
	TypeIdle    ServiceType = "idle"
)

// KillMode enumerates the values accepted by the KillMode= directive.
type KillMode string

// Process kill modes understood by systemd.
const (
	KillControlGroup KillMode = "control-group"
	KillProcess      KillMode = "process"
	KillMixed        KillMode = "mixed"
	KillNone         KillMode = "none"
)

// ServiceConfig holds the [Service] section directives. Field order is
// the rendering order. ExecStart is the only required field anywhere in
// the model; User, Restart, StandardOutput, and StandardError receive
// defaults when left empty.
type ServiceConfig struct {
	ExecStart        string        `yaml:"ExecStart"`
	ExecStartPre     []string      `yaml:"ExecStartPre,omitempty"`
	ExecStartPost    []string      `yaml:"ExecStartPost,omitempty"`
	ExecStop         string        `yaml:"ExecStop,omitempty"`
	ExecStopPost     []string      `yaml:"ExecStopPost,omitempty"`
	ExecReload       string        `yaml:"ExecReload,omitempty"`
	WorkingDirectory string        `yaml:"WorkingDirectory,omitempty"`
	User             string        `yaml:"User,omitempty"`
	Group            string        `yaml:"Group,omitempty"`
	Restart          RestartPolicy `yaml:"Restart,omitempty"`
	RestartSec       *float64      `yaml:"RestartSec,omitempty"`
	StandardOutput   LogOutput     `yaml:"StandardOutput,omitempty"`
	StandardError    LogOutput     `yaml:"StandardError,omitempty"`
	Environment      []string      `yaml:"Environment,omitempty"`
	EnvironmentFile  []string      `yaml:"EnvironmentFile,omitempty"`
	TimeoutStartSec  *float64      `yaml:"TimeoutStartSec,omitempty"`
	TimeoutStopSec   *float64      `yaml:"TimeoutStopSec,omitempty"`
	Type             ServiceType   `yaml:"Type,omitempty"`
	KillMode         KillMode      `yaml:"KillMode,omitempty"`
}

func applyServiceDefaults(service *ServiceConfig) {
	if service.User == "" {
		service.User = "root"
	}
	if service.Restart == "" {
		service.Restart = RestartNo
	}
	if service.StandardOutput == "" {
		service.StandardOutput = LogInherit
	}
	if service.StandardError == "" {
		service.StandardError = LogInherit
	}
}
