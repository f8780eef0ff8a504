// Package fs provides file system operations for unit file management
package fs

import (
	"crypto/sha1" //nolint:gosec // Not used for security purposes, just content comparison
	"fmt"
	"os"
	"path/filepath"

	"github.com/trly/unit-ops/internal/config"
	"github.com/trly/unit-ops/internal/log"
)

// Service provides file system operations with configurable paths.
type Service struct {
	configProvider config.Provider
	logger         log.Logger
}

// NewService creates a new filesystem service with the given config provider.
func NewService(configProvider config.Provider) *Service {
	return &Service{
		configProvider: configProvider,
		logger:         log.NewLogger(configProvider.GetConfig().Verbose),
	}
}

// NewServiceWithLogger creates a new filesystem service with explicit logger injection.
func NewServiceWithLogger(configProvider config.Provider, logger log.Logger) *Service {
	return &Service{
		configProvider: configProvider,
		logger:         logger,
	}
}

// GetUnitFilePath returns the full path for a unit file. name is the
// complete unit name including its type suffix, for example app.service.
func (s *Service) GetUnitFilePath(name string) string {
	return filepath.Join(s.configProvider.GetConfig().UnitDir, name)
}

// GetUnitFilesDirectory returns the directory where unit files are stored.
func (s *Service) GetUnitFilesDirectory() string {
	return s.configProvider.GetConfig().UnitDir
}

// HasUnitChanged checks if the content of a unit file has changed.
func (s *Service) HasUnitChanged(unitPath, content string) bool {
	existingContent, err := os.ReadFile(unitPath) //nolint:gosec // Safe as path is internally constructed, not user-controlled
	if err != nil {
		// File doesn't exist or can't be read, so it has changed
		return true
	}

	s.logger.Debug("Content hash comparison",
		"existing", fmt.Sprintf("%x", GetContentHash(string(existingContent))),
		"new", fmt.Sprintf("%x", GetContentHash(content)))

	// Compare the actual content directly instead of hashes
	if string(existingContent) == content {
		s.logger.Debug("Unit unchanged, skipping", "path", unitPath)
		return false
	}

	return true
}

// WriteUnitFile writes unit content to the specified file path with the
// 0644 mode systemd expects. The explicit chmod normalizes permissions
// when overwriting a file that was created with a different mode.
func (s *Service) WriteUnitFile(unitPath, content string) error {
	s.logger.Debug("Writing unit file", "path", unitPath)

	// Ensure the parent directory exists
	if err := os.MkdirAll(filepath.Dir(unitPath), 0o755); err != nil {
		return fmt.Errorf("failed to create unit directory: %w", err)
	}

	if err := os.WriteFile(unitPath, []byte(content), 0o644); err != nil { //nolint:gosec // Unit files must stay world-readable
		return err
	}

	return os.Chmod(unitPath, 0o644)
}

// GetContentHash returns the hex SHA1 digest used for registry storage.
func (s *Service) GetContentHash(content string) string {
	return fmt.Sprintf("%x", GetContentHash(content))
}

// GetContentHash calculates a SHA1 hash for content storage and change tracking.
func GetContentHash(content string) []byte {
	hash := sha1.New() //nolint:gosec // Not used for security purposes, just for content tracking
	hash.Write([]byte(content))
	return hash.Sum(nil)
}
