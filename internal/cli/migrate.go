package cli

import (
	"fmt"

	"cashflow-tracker/internal/config"
	"cashflow-tracker/internal/database"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func (a *CLIApp) newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the SQL schema",
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				runner, closeDB, err := openMigrationRunner()
				if err != nil {
					return err
				}
				defer closeDB()

				if err := runner.WaitForDatabase(cmd.Context()); err != nil {
					return err
				}
				if err := runner.RunMigrations(); err != nil {
					return err
				}

				version, dirty, err := runner.GetMigrationStatus()
				if err != nil {
					return err
				}
				pterm.Success.Printfln("schema at version %d (dirty: %t)", version, dirty)
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				runner, closeDB, err := openMigrationRunner()
				if err != nil {
					return err
				}
				defer closeDB()

				version, dirty, err := runner.GetMigrationStatus()
				if err != nil {
					return err
				}
				if dirty {
					pterm.Warning.Printfln("schema at version %d is dirty; fix the failed migration and force the version", version)
					return nil
				}
				pterm.Info.Printfln("schema at version %d", version)
				return nil
			},
		},
	)

	return migrateCmd
}

func openMigrationRunner() (*database.MigrationRunner, func(), error) {
	cfg := config.Load()

	sqlDB, err := database.OpenSQL(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	return database.NewMigrationRunnerFromConfig(sqlDB, &cfg.Database), func() { _ = sqlDB.Close() }, nil
}
