// Package db provides the unit tracking database for unit-ops.
package db

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/trly/unit-ops/internal/config"
	"github.com/trly/unit-ops/internal/log"

	// Register migrate's sqlite3 driver.
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"

	// Register sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// GetConnectionString returns the database connection string.
func GetConnectionString(cfg config.Settings) string {
	return "sqlite3://" + cfg.DBPath
}

// Connect establishes a connection to the tracking database, creating
// its parent directory if needed.
func Connect(configProvider config.Provider, logger log.Logger) (*sql.DB, error) {
	// Remove sqlite3:// prefix if present for direct SQL connection
	dbPath := strings.TrimPrefix(configProvider.GetConfig().DBPath, "sqlite3://")

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Connected to database", "path", dbPath)

	return db, nil
}

// Up runs database migrations to the latest version.
func Up(cfg config.Settings, logger log.Logger) error {
	m, err := getMigrationInstance(cfg, logger)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	if err == migrate.ErrNoChange {
		logger.Debug("No new database migrations to apply")
	} else {
		logger.Info("Database migrations applied successfully")
	}

	return nil
}

// Down rolls back all database migrations.
func Down(cfg config.Settings, logger log.Logger) error {
	m, err := getMigrationInstance(cfg, logger)
	if err != nil {
		return err
	}

	err = m.Down()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	logger.Info("Database migrations rolled back")
	return nil
}

func getMigrationInstance(cfg config.Settings, logger log.Logger) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, GetConnectionString(cfg))
	if err != nil {
		return nil, err
	}

	m.Log = &migrationLogger{logger: logger}

	return m, nil
}

type migrationLogger struct {
	logger log.Logger
}

func (l *migrationLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug("Migration: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *migrationLogger) Verbose() bool {
	return true
}
