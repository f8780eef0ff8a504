// Package validate provides system requirements validation.
package validate

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/trly/unit-ops/internal/execx"
	"github.com/trly/unit-ops/internal/log"
)

// Validator provides system requirements validation with dependency
// injection.
type Validator struct {
	logger   log.Logger
	runner   execx.Runner
	osGetter func() string // For testing, defaults to runtime.GOOS
}

// NewValidator creates a new Validator with the provided logger and
// command runner.
func NewValidator(logger log.Logger, runner execx.Runner) *Validator {
	return &Validator{
		logger:   logger,
		runner:   runner,
		osGetter: func() string { return runtime.GOOS },
	}
}

// NewValidatorWithDefaults creates a new Validator with default
// dependencies.
func NewValidatorWithDefaults(logger log.Logger) *Validator {
	return NewValidator(logger, execx.NewRealRunner())
}

// WithOSGetter sets a custom OS getter for testing.
func (v *Validator) WithOSGetter(osGetter func() string) *Validator {
	v.osGetter = osGetter
	return v
}

// SystemRequirements checks that the host can manage the generated
// units: Linux with a working systemd.
func (v *Validator) SystemRequirements() error {
	goos := v.osGetter()
	if goos != "linux" {
		return fmt.Errorf("unsupported platform: %s (unit-ops requires Linux with systemd)", goos)
	}
	return v.validateSystemd(context.Background())
}

func (v *Validator) validateSystemd(ctx context.Context) error {
	v.logger.Debug("Validating systemd availability")

	version, err := v.runner.CombinedOutput(ctx, "systemctl", "--version")
	if err != nil {
		return fmt.Errorf("systemd not found: %w", err)
	}

	if !strings.Contains(string(version), "systemd") {
		return fmt.Errorf("systemd not properly installed")
	}

	return nil
}
