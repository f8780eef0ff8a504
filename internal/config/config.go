// Package config provides configuration management for unit-ops
package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

// Provider defines the interface for configuration providers.
type Provider interface {
	// GetConfig returns the current application configuration.
	GetConfig() *Settings
	// SetConfig sets the application configuration.
	SetConfig(c *Settings)
	// InitConfig initializes the application configuration.
	InitConfig() *Settings
	// SetConfigFilePath sets the configuration file path.
	SetConfigFilePath(p string)
}

// defaultConfigProvider implements the Provider interface.
type defaultConfigProvider struct {
	cfg *Settings
}

// NewDefaultConfigProvider creates a new default config provider.
func NewDefaultConfigProvider() Provider {
	return &defaultConfigProvider{}
}

var defaultProvider = NewDefaultConfigProvider()
var cfg *Settings

// Default configuration values for the unit-ops system. These constants
// define the defaults for the unit file directory, manifest and repository
// directories, database path, sync interval, and their per-user variants.
const (
	DefaultUnitDir           = "/etc/systemd/system"
	DefaultManifestDir       = "/etc/unit-ops/manifests"
	DefaultRepositoryDir     = "/var/lib/unit-ops"
	DefaultDBPath            = "/var/lib/unit-ops/unit-ops.db"
	DefaultSyncInterval      = 5 * time.Minute
	DefaultUserUnitDir       = "$HOME/.config/systemd/user"
	DefaultUserManifestDir   = "$HOME/.config/unit-ops/manifests"
	DefaultUserRepositoryDir = "$HOME/.local/share/unit-ops"
	DefaultUserDBPath        = "$HOME/.local/share/unit-ops/unit-ops.db"
	DefaultUserMode          = false
	DefaultVerbose           = false
)

// Repository represents a git repository holding unit manifests. Reference
// may name a branch, tag, or commit; ManifestDir points at the manifest
// subdirectory within the checkout.
type Repository struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Reference   string `yaml:"ref,omitempty"`
	ManifestDir string `yaml:"manifestDir,omitempty"`
}

// Settings represents the configuration for the unit-ops system.
type Settings struct {
	UnitDir       string        `yaml:"unitDir"`
	ManifestDir   string        `yaml:"manifestDir"`
	RepositoryDir string        `yaml:"repositoryDir"`
	SyncInterval  time.Duration `yaml:"syncInterval"`
	Repositories  []Repository  `yaml:"repositories"`
	DBPath        string        `yaml:"dbPath"`
	UserMode      bool          `yaml:"userMode"`
	Verbose       bool          `yaml:"verbose"`
}

// Implementation of Provider methods for defaultConfigProvider

func (p *defaultConfigProvider) SetConfig(c *Settings) {
	p.cfg = c
}

func (p *defaultConfigProvider) GetConfig() *Settings {
	return p.cfg
}

func (p *defaultConfigProvider) SetConfigFilePath(path string) {
	viper.SetConfigFile(path)
}

func (p *defaultConfigProvider) InitConfig() *Settings {
	p.cfg = initConfigInternal()
	return p.cfg
}

// Package-level pass-throughs to the default provider.

// SetConfig sets the application configuration.
func SetConfig(c *Settings) {
	defaultProvider.SetConfig(c)
	cfg = c
}

// GetConfig returns the current application configuration.
func GetConfig() *Settings {
	return defaultProvider.GetConfig()
}

// SetConfigFilePath sets the configuration file path.
func SetConfigFilePath(p string) {
	defaultProvider.SetConfigFilePath(p)
}

// InitConfig initializes the application configuration.
func InitConfig() *Settings {
	cfg = defaultProvider.InitConfig()
	return cfg
}

// ApplyUserModeDefaults rewrites directory defaults to their per-user
// variants. Only values still at the system-wide default are touched, so
// explicit configuration always wins.
func ApplyUserModeDefaults(c *Settings) {
	c.UserMode = true
	if c.UnitDir == DefaultUnitDir {
		c.UnitDir = os.ExpandEnv(DefaultUserUnitDir)
	}
	if c.ManifestDir == DefaultManifestDir {
		c.ManifestDir = os.ExpandEnv(DefaultUserManifestDir)
	}
	if c.RepositoryDir == DefaultRepositoryDir {
		c.RepositoryDir = os.ExpandEnv(DefaultUserRepositoryDir)
	}
	if c.DBPath == DefaultDBPath {
		c.DBPath = os.ExpandEnv(DefaultUserDBPath)
	}
}

// Internal function to initialize configuration.
func initConfigInternal() *Settings {
	cfg := &Settings{
		UnitDir:       DefaultUnitDir,
		ManifestDir:   DefaultManifestDir,
		RepositoryDir: DefaultRepositoryDir,
		SyncInterval:  DefaultSyncInterval,
		DBPath:        DefaultDBPath,
		UserMode:      DefaultUserMode,
		Verbose:       DefaultVerbose,
	}

	viper.SetDefault("unitDir", DefaultUnitDir)
	viper.SetDefault("manifestDir", DefaultManifestDir)
	viper.SetDefault("repositoryDir", DefaultRepositoryDir)
	viper.SetDefault("syncInterval", DefaultSyncInterval)
	viper.SetDefault("dbPath", DefaultDBPath)
	viper.SetDefault("userMode", DefaultUserMode)
	viper.SetDefault("verbose", DefaultVerbose)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(os.ExpandEnv("$HOME/.config/unit-ops"))
	viper.AddConfigPath("/etc/opt/unit-ops")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		panic(err)
	}

	return cfg
}
