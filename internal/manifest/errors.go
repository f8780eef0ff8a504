package manifest

import (
	"errors"
	"fmt"
)

// notFoundError indicates that a manifest file or directory is absent.
type notFoundError struct {
	path  string
	cause error
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("manifest not found: %s", e.path)
}

func (e *notFoundError) Unwrap() error {
	return e.cause
}

// IsNotFoundError checks if an error is a notFoundError.
func IsNotFoundError(err error) bool {
	var nerr *notFoundError
	return errors.As(err, &nerr)
}

// invalidYAMLError indicates that a manifest contains YAML that does
// not decode, including unknown keys under strict decoding.
type invalidYAMLError struct {
	path  string
	cause error
}

func (e *invalidYAMLError) Error() string {
	return fmt.Sprintf("invalid YAML in manifest %s: %v", e.path, e.cause)
}

func (e *invalidYAMLError) Unwrap() error {
	return e.cause
}

// IsInvalidYAMLError checks if an error is an invalidYAMLError.
func IsInvalidYAMLError(err error) bool {
	var yerr *invalidYAMLError
	return errors.As(err, &yerr)
}

// entryError indicates that one entry in an otherwise readable
// manifest could not be built.
type entryError struct {
	path  string
	name  string
	cause error
}

func (e *entryError) Error() string {
	if e.name == "" {
		return fmt.Sprintf("manifest %s: %v", e.path, e.cause)
	}
	return fmt.Sprintf("manifest %s: entry %q: %v", e.path, e.name, e.cause)
}

func (e *entryError) Unwrap() error {
	return e.cause
}

// IsEntryError checks if an error is an entryError.
func IsEntryError(err error) bool {
	var eerr *entryError
	return errors.As(err, &eerr)
}

// pathError indicates a filesystem problem other than absence.
type pathError struct {
	path  string
	cause error
}

func (e *pathError) Error() string {
	return fmt.Sprintf("manifest path error: %s (%v)", e.path, e.cause)
}

func (e *pathError) Unwrap() error {
	return e.cause
}

// IsPathError checks if an error is a pathError.
func IsPathError(err error) bool {
	var perr *pathError
	return errors.As(err, &perr)
}
