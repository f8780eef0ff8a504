package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trly/unit-ops/internal/config"
	"github.com/trly/unit-ops/internal/testutil"
)

func TestGetUnitFilePath(t *testing.T) {
	cfg := &config.Settings{UnitDir: "/test/units"}
	provider := config.NewDefaultConfigProvider()
	provider.SetConfig(cfg)

	tests := []struct {
		name     string
		unitName string
		expected string
	}{
		{
			name:     "service unit",
			unitName: "web.service",
			expected: "/test/units/web.service",
		},
		{
			name:     "timer unit",
			unitName: "backup.timer",
			expected: "/test/units/backup.timer",
		},
		{
			name:     "templated unit",
			unitName: "worker@1.service",
			expected: "/test/units/worker@1.service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewServiceWithLogger(provider, testutil.NewTestLogger(t))
			result := service.GetUnitFilePath(tt.unitName)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestHasUnitChanged(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name            string
		existingContent string
		newContent      string
		fileExists      bool
		expected        bool
	}{
		{
			name:            "file doesn't exist",
			existingContent: "",
			newContent:      "new content",
			fileExists:      false,
			expected:        true,
		},
		{
			name:            "content unchanged",
			existingContent: "same content",
			newContent:      "same content",
			fileExists:      true,
			expected:        false,
		},
		{
			name:            "content changed",
			existingContent: "old content",
			newContent:      "new content",
			fileExists:      true,
			expected:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unitPath := filepath.Join(tempDir, "test.service")

			if tt.fileExists {
				err := os.WriteFile(unitPath, []byte(tt.existingContent), 0o644)
				require.NoError(t, err)
			}

			provider := testutil.NewMockConfig(t, testutil.WithUnitDir(tempDir))
			service := NewServiceWithLogger(provider, testutil.NewTestLogger(t))
			result := service.HasUnitChanged(unitPath, tt.newContent)
			assert.Equal(t, tt.expected, result)

			// Clean up for next test
			if tt.fileExists {
				os.Remove(unitPath) //nolint:errcheck,gosec // Test cleanup
			}
		})
	}
}

func TestWriteUnitFile(t *testing.T) {
	tempDir := t.TempDir()
	provider := testutil.NewMockConfig(t, testutil.WithUnitDir(tempDir))
	service := NewServiceWithLogger(provider, testutil.NewTestLogger(t))

	t.Run("successful write", func(t *testing.T) {
		unitPath := filepath.Join(tempDir, "test.service")
		err := service.WriteUnitFile(unitPath, "test content")
		require.NoError(t, err)

		writtenContent, err := os.ReadFile(unitPath)
		require.NoError(t, err)
		assert.Equal(t, "test content", string(writtenContent))

		info, err := os.Stat(unitPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	})

	t.Run("write with subdirectory creation", func(t *testing.T) {
		unitPath := filepath.Join(tempDir, "subdir", "test.service")
		err := service.WriteUnitFile(unitPath, "test content")
		require.NoError(t, err)
		assert.FileExists(t, unitPath)
	})

	t.Run("overwrite normalizes permissions", func(t *testing.T) {
		unitPath := filepath.Join(tempDir, "locked.service")
		require.NoError(t, os.WriteFile(unitPath, []byte("old"), 0o600))

		err := service.WriteUnitFile(unitPath, "new")
		require.NoError(t, err)

		info, err := os.Stat(unitPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	})
}

func TestGetContentHash(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "empty content",
			content:  "",
			expected: "da39a3ee5e6b4b0d3255bfef95601890afd80709",
		},
		{
			name:     "simple content",
			content:  "hello world",
			expected: "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetContentHash(tt.content)
			assert.Equal(t, tt.expected, fmt.Sprintf("%x", result))
		})
	}
}

func TestServiceWithConfigProvider(t *testing.T) {
	testConfig := &config.Settings{
		UnitDir: "/test/custom/unit/dir",
		Verbose: false,
	}
	configProvider := config.NewDefaultConfigProvider()
	configProvider.SetConfig(testConfig)

	fsService := NewService(configProvider)

	unitPath := fsService.GetUnitFilePath("test.service")
	assert.Equal(t, "/test/custom/unit/dir/test.service", unitPath, "Service should use injected config for unit path")

	dir := fsService.GetUnitFilesDirectory()
	assert.Equal(t, "/test/custom/unit/dir", dir, "Service should use injected config for the unit directory")

	// Method form returns the hex digest of the package-level hash
	content := "test content"
	assert.Equal(t, fmt.Sprintf("%x", GetContentHash(content)), fsService.GetContentHash(content))
}
