package cmd

// SystemValidator verifies the host can run unit-ops. Commands that
// talk to systemd call it from their PreRun hooks.
type SystemValidator interface {
	SystemRequirements() error
}
