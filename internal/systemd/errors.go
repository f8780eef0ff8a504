package systemd

import (
	"errors"
	"fmt"
	"os"
)

// WriteError represents a failure to persist a unit file.
type WriteError struct {
	UnitName string // The name of the unit
	UnitType string // The type of the unit (service or timer)
	Path     string // The unit file path that could not be written
	Cause    error  // The underlying error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s %s to %s: %v", e.UnitType, e.UnitName, e.Path, e.Cause)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// NewWriteError creates a new WriteError with the given details.
func NewWriteError(unitName, unitType, path string, cause error) *WriteError {
	return &WriteError{
		UnitName: unitName,
		UnitType: unitType,
		Path:     path,
		Cause:    cause,
	}
}

// IsWriteError checks if an error is a WriteError.
func IsWriteError(err error) bool {
	var writeErr *WriteError
	return errors.As(err, &writeErr)
}

// IsPermissionDenied reports whether an error chain bottoms out in a
// filesystem permission failure, the case that calls for root.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, os.ErrPermission)
}
