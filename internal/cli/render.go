package cli

import (
	"fmt"
	"strings"

	"cashflow-tracker/internal/dto"

	"github.com/pterm/pterm"
)

// RenderProjection draws the projection grid as a boxed table: one row per
// account in its own currency, then the converted grand total and summary.
func RenderProjection(resp dto.ProjectionResponse) (string, error) {
	header := append([]string{"Account", "Currency", "Current"}, resp.Months...)
	tableData := pterm.TableData{header}

	for _, row := range resp.AccountProjections {
		line := []string{row.AccountName, row.Currency, row.CurrentBalance.StringFixed(2)}
		for _, m := range row.MonthlyProjections {
			line = append(line, m.ProjectedBalance.StringFixed(2))
		}
		tableData = append(tableData, line)
	}

	total := []string{fmt.Sprintf("Total (%s)", resp.ReportingCurrency), resp.ReportingCurrency, ""}
	for _, gt := range resp.GrandTotals {
		total = append(total, gt.TotalBalance.StringFixed(2))
	}
	tableData = append(tableData, total)

	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData).
		Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render projection table: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Projection as of %s\n", resp.AsOf)
	b.WriteString(table)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Projected income:  %s %s\n", resp.Summary.TotalProjectedIncome.StringFixed(2), resp.ReportingCurrency)
	fmt.Fprintf(&b, "Projected expense: %s %s\n", resp.Summary.TotalProjectedExpense.StringFixed(2), resp.ReportingCurrency)
	fmt.Fprintf(&b, "Projected net:     %s %s\n", resp.Summary.ProjectedNet.StringFixed(2), resp.ReportingCurrency)

	for _, id := range resp.OmittedAccounts {
		fmt.Fprintf(&b, "Omitted from totals (no rate): %s\n", id)
	}

	return b.String(), nil
}
