// Package testutil provides common test utilities and helpers to reduce boilerplate in test files.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trly/unit-ops/internal/config"
	"github.com/trly/unit-ops/internal/log"
)

// NewTestLogger creates a logger that writes to t.Logf for testing.
// This ensures test output is properly captured by the test framework.
func NewTestLogger(t testing.TB) log.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	// Create a custom handler that writes to t.Logf
	handler := &testHandler{t: t, opts: opts}
	slogLogger := slog.New(handler)

	return log.NewSlogAdapter(slogLogger)
}

// ConfigOption allows customization of test config settings.
type ConfigOption func(*config.Settings)

// WithUnitDir sets a custom unit file directory.
func WithUnitDir(dir string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.UnitDir = dir
	}
}

// WithManifestDir sets a custom manifest directory.
func WithManifestDir(dir string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.ManifestDir = dir
	}
}

// WithRepositoryDir sets a custom repository directory.
func WithRepositoryDir(dir string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.RepositoryDir = dir
	}
}

// WithDBPath sets a custom database path.
func WithDBPath(path string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.DBPath = path
	}
}

// WithVerbose sets verbose logging.
func WithVerbose(verbose bool) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.Verbose = verbose
	}
}

// WithUserMode sets user mode.
func WithUserMode(userMode bool) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.UserMode = userMode
	}
}

// NewMockConfig creates a config provider for testing with optional
// customizations. All paths point into a per-test temp directory so
// tests never touch the real unit directory.
func NewMockConfig(t testing.TB, opts ...ConfigOption) config.Provider {
	tmpDir, err := os.MkdirTemp("", "unit-ops-test-*")
	require.NoError(t, err)

	// Cleanup temp directory when test finishes
	t.Cleanup(func() {
		_ = os.RemoveAll(tmpDir)
	})

	cfg := &config.Settings{
		UnitDir:       filepath.Join(tmpDir, "units"),
		ManifestDir:   filepath.Join(tmpDir, "manifests"),
		RepositoryDir: filepath.Join(tmpDir, "repos"),
		DBPath:        filepath.Join(tmpDir, "unit-ops.db"),
		Verbose:       true,
	}

	for _, dir := range []string{cfg.UnitDir, cfg.ManifestDir, cfg.RepositoryDir} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}

	// Apply any custom options
	for _, opt := range opts {
		opt(cfg)
	}

	configProvider := config.NewDefaultConfigProvider()
	configProvider.SetConfig(cfg)
	return configProvider
}

// testHandler implements slog.Handler to write to testing.TB.
type testHandler struct {
	t    testing.TB
	opts *slog.HandlerOptions
}

func (h *testHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *testHandler) Handle(_ context.Context, record slog.Record) error {
	h.t.Logf("[%s] %s", record.Level.String(), record.Message)
	return nil
}

func (h *testHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return &testHandler{t: h.t, opts: h.opts}
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return &testHandler{t: h.t, opts: h.opts}
}
