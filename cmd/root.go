/*
Copyright © 2025 Travis Lyons travis.lyons@gmail.com

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trly/unit-ops/internal/config"
	"github.com/trly/unit-ops/internal/db"
	"github.com/trly/unit-ops/internal/log"
	"github.com/trly/unit-ops/internal/validate"
)

// RootCommand represents the root command for unit-ops CLI.
type RootCommand struct{}

var (
	cfg            *config.Settings
	userMode       bool
	configFilePath string
	dbPath         string
	unitDir        string
	repositoryDir  string
	verbose        bool
)

// GetCobraCommand returns the cobra root command for unit-ops CLI.
func (c *RootCommand) GetCobraCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "unit-ops",
		Short: "Unit-Ops manages systemd services and timers from declarative manifests.",
		Long: `Unit-Ops manages systemd services and timers from declarative manifests.
It generates unit files from YAML manifests, kept locally or in Git
repositories, and handles unit reloading and restarting.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			provider := config.NewDefaultConfigProvider()
			if configFilePath != "" {
				provider.SetConfigFilePath(configFilePath)
			}
			cfg = provider.InitConfig()
			config.SetConfig(cfg)
			log.Init(verbose)

			if verbose {
				fmt.Printf("%s using config: %s\n\n", cmd.Root().Use, viper.GetViper().ConfigFileUsed())
				cfg.Verbose = verbose
			}

			if userMode {
				config.ApplyUserModeDefaults(cfg)
			}

			if repositoryDir != "" {
				cfg.RepositoryDir = repositoryDir
			}

			if unitDir != "" {
				cfg.UnitDir = unitDir
			}

			if dbPath != "" {
				cfg.DBPath = dbPath
			}

			logger := log.GetLogger()

			// Unmet requirements are logged, not fatal, so commands that
			// never reach systemd keep working.
			if err := validate.NewValidatorWithDefaults(logger).SystemRequirements(); err != nil {
				logger.Error("System requirements not met", "error", err)
			}

			if err := db.Up(*cfg, logger); err != nil {
				logger.Error("Failed to initialize database", "error", err)
				os.Exit(1)
			}

			dbConn, err := db.Connect(provider, logger)
			if err != nil {
				logger.Error("Failed to connect to database", "error", err)
				os.Exit(1)
			}

			app := NewApp(logger, provider, dbConn)
			cmd.SetContext(context.WithValue(cmd.Context(), appContextKey, app))
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if app, ok := cmd.Context().Value(appContextKey).(*App); ok && app.DB != nil {
				_ = app.DB.Close()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&userMode, "user", "u", false, "Run in user mode")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config", "", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "Path to the database file")
	rootCmd.PersistentFlags().StringVar(&unitDir, "unit-dir", "", "Path to the systemd unit directory")
	rootCmd.PersistentFlags().StringVar(&repositoryDir, "repository-dir", "", "Path to the repository directory")

	rootCmd.AddCommand(
		(&ConfigCommand{}).GetCobraCommand(),
		NewRenderCommand().GetCobraCommand(),
		NewApplyCommand().GetCobraCommand(),
		NewSyncCommand().GetCobraCommand(),
		NewDaemonCommand().GetCobraCommand(),
		NewListCommand().GetCobraCommand(),
		NewRemoveCommand().GetCobraCommand(),
		(&UnitCommand{}).GetCobraCommand(),
		(&UpdateCommand{}).GetCobraCommand(),
		(&VersionCommand{}).GetCobraCommand(),
	)

	return rootCmd
}
