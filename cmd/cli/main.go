package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/rosteriq/cmd/cli/commands"
	"github.com/kishan-gau/rosteriq/internal/config"
	"github.com/kishan-gau/rosteriq/internal/metrics"
	"github.com/kishan-gau/rosteriq/pkg/postgres"
	"github.com/kishan-gau/rosteriq/pkg/utils/logging"
)

var (
	env        string
	configPath string
	app        *commands.AppContext
	db         *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rosteriq",
		Short: "RosterIQ CLI - Generate and publish shift schedules",
		Long:  `A CLI tool for generating draft schedules from shift templates, validating them against published schedules, and publishing or exporting them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
			if db != nil {
				db.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "prod", "Environment (test, prod, etc.)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults to rosteriq.yaml)")

	app = &commands.AppContext{Ctx: context.Background()}

	rootCmd.AddCommand(
		commands.GenerateScheduleCmd(app),
		commands.RegenerateScheduleCmd(app),
		commands.PublishScheduleCmd(app),
		commands.ValidateScheduleCmd(app),
		commands.ExportScheduleCmd(app),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initApp loads configuration, initializes logging and connects to the
// database before any command runs.
func initApp() error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	metrics.Register()

	db, err = postgres.NewDB(app.Ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Cfg = cfg
	app.Logger = logger
	app.Store = db
	return nil
}
