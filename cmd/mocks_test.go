package cmd

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trly/unit-ops/internal/config"
	"github.com/trly/unit-ops/internal/execx"
	"github.com/trly/unit-ops/internal/fs"
	"github.com/trly/unit-ops/internal/log"
	"github.com/trly/unit-ops/internal/repository"
	"github.com/trly/unit-ops/internal/testutil"
	"github.com/trly/unit-ops/internal/testutil/fakerunner"
)

// testManifest declares one service and one timer, enough to cover
// both unit kinds in command tests.
const testManifest = `units:
  - name: web.service
    unit:
      Description: Web server
    service:
      ExecStart: /usr/bin/web --listen :8080
  - name: backup.timer
    unit:
      Description: Nightly backup
    timer:
      OnCalendar: "@daily"
      Unit: backup.service
`

// writeTestManifest writes manifest content into a temp file and
// returns its path.
func writeTestManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "units.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// MockValidator implements SystemValidator for testing.
type MockValidator struct {
	SystemRequirementsFunc func() error
}

func (m *MockValidator) SystemRequirements() error {
	if m.SystemRequirementsFunc != nil {
		return m.SystemRequirementsFunc()
	}
	return nil
}

// MockGitSyncer implements repository.GitSyncer for testing.
type MockGitSyncer struct {
	SyncAllFunc  func(context.Context, []config.Repository) ([]repository.SyncResult, error)
	SyncRepoFunc func(context.Context, config.Repository) repository.SyncResult
}

func (m *MockGitSyncer) SyncAll(ctx context.Context, repos []config.Repository) ([]repository.SyncResult, error) {
	if m.SyncAllFunc != nil {
		return m.SyncAllFunc(ctx, repos)
	}
	return []repository.SyncResult{}, nil
}

func (m *MockGitSyncer) SyncRepo(ctx context.Context, repo config.Repository) repository.SyncResult {
	if m.SyncRepoFunc != nil {
		return m.SyncRepoFunc(ctx, repo)
	}
	return repository.SyncResult{Repository: repo, Success: true}
}

// MockUnitRepo implements repository.Repository in memory with the same
// upsert semantics as the SQL implementation. FindAllErr forces FindAll
// and FindByUnitType to fail.
type MockUnitRepo struct {
	units  map[string]repository.Unit
	nextID int64

	FindAllErr error
}

func NewMockUnitRepo() *MockUnitRepo {
	return &MockUnitRepo{units: make(map[string]repository.Unit)}
}

func (m *MockUnitRepo) FindAll() ([]repository.Unit, error) {
	if m.FindAllErr != nil {
		return nil, m.FindAllErr
	}
	out := make([]repository.Unit, 0, len(m.units))
	for _, u := range m.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockUnitRepo) FindByUnitType(unitType string) ([]repository.Unit, error) {
	all, err := m.FindAll()
	if err != nil {
		return nil, err
	}
	var out []repository.Unit
	for _, u := range all {
		if u.Type == unitType {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockUnitRepo) FindByName(name string) (repository.Unit, error) {
	u, ok := m.units[name]
	if !ok {
		return repository.Unit{}, sql.ErrNoRows
	}
	return u, nil
}

func (m *MockUnitRepo) Create(u *repository.Unit) (int64, error) {
	if existing, ok := m.units[u.Name]; ok {
		existing.SHA1Hash = u.SHA1Hash
		existing.UserMode = u.UserMode
		m.units[u.Name] = existing
		return existing.ID, nil
	}
	m.nextID++
	rec := *u
	rec.ID = m.nextID
	rec.CreatedAt = time.Now()
	m.units[u.Name] = rec
	return rec.ID, nil
}

func (m *MockUnitRepo) Delete(id int64) error {
	for name, u := range m.units {
		if u.ID == id {
			delete(m.units, name)
			return nil
		}
	}
	return nil
}

// AppBuilder provides a fluent interface for building test Apps. All
// paths in the default config point into a per-test temp directory.
type AppBuilder struct {
	logger    log.Logger
	provider  config.Provider
	config    *config.Settings
	runner    execx.Runner
	unitRepo  repository.Repository
	validator SystemValidator
	syncer    repository.GitSyncer
}

// NewAppBuilder creates a new AppBuilder with sensible defaults.
func NewAppBuilder(t *testing.T) *AppBuilder {
	return &AppBuilder{
		logger:    testutil.NewTestLogger(t),
		provider:  testutil.NewMockConfig(t),
		runner:    fakerunner.New(),
		unitRepo:  NewMockUnitRepo(),
		validator: &MockValidator{},
		syncer:    &MockGitSyncer{},
	}
}

func (b *AppBuilder) WithValidator(v SystemValidator) *AppBuilder {
	b.validator = v
	return b
}

func (b *AppBuilder) WithConfig(c *config.Settings) *AppBuilder {
	b.config = c
	return b
}

func (b *AppBuilder) WithProvider(p config.Provider) *AppBuilder {
	b.provider = p
	return b
}

func (b *AppBuilder) WithRunner(r execx.Runner) *AppBuilder {
	b.runner = r
	return b
}

func (b *AppBuilder) WithUnitRepo(r repository.Repository) *AppBuilder {
	b.unitRepo = r
	return b
}

func (b *AppBuilder) WithSyncer(s repository.GitSyncer) *AppBuilder {
	b.syncer = s
	return b
}

func (b *AppBuilder) Build(t *testing.T) *App {
	t.Helper()
	if b.config != nil {
		b.provider.SetConfig(b.config)
	}
	return &App{
		Logger:         b.logger,
		Config:         b.provider.GetConfig(),
		ConfigProvider: b.provider,
		Runner:         b.runner,
		FSService:      fs.NewServiceWithLogger(b.provider, b.logger),
		UnitRepo:       b.unitRepo,
		Validator:      b.validator,
		Syncer:         b.syncer,
	}
}
