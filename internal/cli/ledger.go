package cli

import (
	"fmt"
	"time"

	"cashflow-tracker/internal/dto"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const (
	defaultSeedMonths     = 3
	defaultAuditRetention = 90 * 24 * time.Hour
)

func (a *CLIApp) newProjectCmd() *cobra.Command {
	var email, asOfFlag string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Print the six-month projection for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf := time.Now().UTC()
			if asOfFlag != "" {
				parsed, err := dto.ParseDate(asOfFlag)
				if err != nil {
					return fmt.Errorf("invalid --as-of %q, expected YYYY-MM-DD", asOfFlag)
				}
				asOf = parsed
			}

			container, closeDB, err := a.bootstrap(cmd.Context(), prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer closeDB()

			user, err := lookupUser(container, email)
			if err != nil {
				return err
			}

			spinner, _ := pterm.DefaultSpinner.Start("Projecting balances...")
			result, err := container.Projections.Project(cmd.Context(), user.ID, asOf)
			if err != nil {
				spinner.Fail("projection failed")
				return err
			}
			spinner.Success("done")

			out, err := RenderProjection(dto.NewProjectionResponse(asOf, *result))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.out, out)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the user to project")
	cmd.Flags().StringVar(&asOfFlag, "as-of", "", "projection date (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *CLIApp) newSeedCmd() *cobra.Command {
	var email string
	var months int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate demo transactions for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, closeDB, err := a.bootstrap(cmd.Context(), prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer closeDB()

			user, err := lookupUser(container, email)
			if err != nil {
				return err
			}

			created, err := container.DemoData.Seed(user.ID, months, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("failed to seed demo data: %w", err)
			}
			pterm.Success.Printfln("created %d transactions over %d months for %s", created, months, email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the user to seed")
	cmd.Flags().IntVar(&months, "months", defaultSeedMonths, "months of history to generate (1-12)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *CLIApp) newAuditCmd() *cobra.Command {
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Maintain the audit trail",
	}

	var olderThan time.Duration
	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete audit entries older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, closeDB, err := a.bootstrap(cmd.Context(), prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer closeDB()

			removed, err := container.Audit.PurgeOlderThan(olderThan)
			if err != nil {
				return fmt.Errorf("failed to purge audit log: %w", err)
			}
			pterm.Info.Printfln("removed %d audit entries older than %s", removed, olderThan)
			return nil
		},
	}
	purgeCmd.Flags().DurationVar(&olderThan, "older-than", defaultAuditRetention, "retention window, at least 24h")

	auditCmd.AddCommand(purgeCmd)
	return auditCmd
}
