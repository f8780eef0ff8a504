// Package fakerunner provides a fake implementation of execx.Runner for testing.
package fakerunner

import (
	"context"
	"fmt"
	"strings"
)

// Runner is a fake implementation of execx.Runner for testing.
type Runner struct {
	outputs map[string][]byte
	errors  map[string]error
	calls   []Call
}

// Call represents a captured command execution call.
type Call struct {
	Name string
	Args []string
}

// ExitError mimics a non-zero process exit for scripted commands. It
// satisfies the same ExitCode contract as exec.ExitError, so callers
// that extract exit codes via errors.As treat it identically.
type ExitError struct {
	Code int
}

// Error returns the exec-style exit status message.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the scripted exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// New creates a new fake runner.
func New() *Runner {
	return &Runner{
		outputs: make(map[string][]byte),
		errors:  make(map[string]error),
		calls:   []Call{},
	}
}

// SetOutput sets the output for a specific command.
func (r *Runner) SetOutput(name string, args []string, output []byte) {
	key := r.makeKey(name, args)
	r.outputs[key] = output
}

// SetError sets the error for a specific command.
func (r *Runner) SetError(name string, args []string, err error) {
	key := r.makeKey(name, args)
	r.errors[key] = err
}

// SetExitCode scripts a non-zero process exit for a specific command.
func (r *Runner) SetExitCode(name string, args []string, code int) {
	r.SetError(name, args, &ExitError{Code: code})
}

// CombinedOutput implements execx.Runner.
func (r *Runner) CombinedOutput(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, Call{Name: name, Args: args})

	key := r.makeKey(name, args)

	if err, exists := r.errors[key]; exists {
		return r.outputs[key], err
	}

	if output, exists := r.outputs[key]; exists {
		return output, nil
	}

	// Unscripted commands succeed with empty output.
	return []byte{}, nil
}

// GetCalls returns all captured command calls.
func (r *Runner) GetCalls() []Call {
	return r.calls
}

// Reset clears all stored outputs, errors, and calls.
func (r *Runner) Reset() {
	r.outputs = make(map[string][]byte)
	r.errors = make(map[string]error)
	r.calls = []Call{}
}

func (r *Runner) makeKey(name string, args []string) string {
	return fmt.Sprintf("%s %s", name, strings.Join(args, " "))
}
