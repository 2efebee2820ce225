package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cashflow-tracker/internal/app"
	"cashflow-tracker/internal/config"
	"cashflow-tracker/internal/database"
	"cashflow-tracker/internal/models"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// CLIApp is the cashflow command-line interface.
type CLIApp struct {
	rootCmd *cobra.Command
	out     io.Writer
	logger  *slog.Logger
}

// NewCLIApp builds the command tree.
func NewCLIApp(version string) *CLIApp {
	a := &CLIApp{out: os.Stdout}

	rootCmd := &cobra.Command{
		Use:           "cashflow",
		Short:         "Cashflow tracker with six-month projections",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional outside local development
			_ = godotenv.Load()
			a.logger = newLogger(os.Getenv("APP_ENV"))
			slog.SetDefault(a.logger)
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "cashflow version: %s\n" .Version}}`)

	rootCmd.AddCommand(
		a.newServeCmd(),
		a.newMigrateCmd(),
		a.newProjectCmd(),
		a.newSeedCmd(),
		a.newAuditCmd(),
	)

	a.rootCmd = rootCmd
	return a
}

// Execute runs the CLI application.
func (a *CLIApp) Execute() error {
	return a.rootCmd.Execute()
}

func newLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// bootstrap loads configuration, opens and migrates the database and wires
// the services. The returned func closes the database.
func (a *CLIApp) bootstrap(ctx context.Context, reg prometheus.Registerer) (*app.Container, func(), error) {
	cfg := config.Load()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	return app.New(cfg, db, reg, a.logger), closeDB, nil
}

// lookupUser resolves the --email flag shared by the ledger commands.
func lookupUser(c *app.Container, email string) (*models.User, error) {
	user, err := c.Users.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %q: %w", email, err)
	}
	return user, nil
}
