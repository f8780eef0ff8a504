// Package cmd provides the command line interface for unit-ops
package cmd

import (
	"database/sql"

	"github.com/trly/unit-ops/internal/config"
	"github.com/trly/unit-ops/internal/execx"
	"github.com/trly/unit-ops/internal/fs"
	"github.com/trly/unit-ops/internal/log"
	"github.com/trly/unit-ops/internal/repository"
	"github.com/trly/unit-ops/internal/validate"
)

// contextKey is a private type for values this package stores on the
// command context.
type contextKey string

// appContextKey carries the App dependency container.
const appContextKey contextKey = "app"

// App holds the application dependencies for the command line interface.
type App struct {
	Logger         log.Logger
	Config         *config.Settings
	ConfigProvider config.Provider
	Runner         execx.Runner
	FSService      *fs.Service
	DB             *sql.DB
	UnitRepo       repository.Repository
	Validator      SystemValidator
	Syncer         repository.GitSyncer
}

// NewApp creates a new App with all dependencies initialized.
func NewApp(logger log.Logger, configProvider config.Provider, dbConn *sql.DB) *App {
	runner := execx.NewRealRunner()

	return &App{
		Logger:         logger,
		Config:         configProvider.GetConfig(),
		ConfigProvider: configProvider,
		Runner:         runner,
		FSService:      fs.NewServiceWithLogger(configProvider, logger),
		DB:             dbConn,
		UnitRepo:       repository.NewRepository(dbConn),
		Validator:      validate.NewValidator(logger, runner),
		Syncer:         repository.NewGitSyncer(configProvider, logger),
	}
}
