package dto

import (
	"time"

	"cashflow-tracker/internal/projection"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyProjection is one month of an account's projection
type MonthlyProjection struct {
	Month            string          `json:"month"`
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	ProjectedBalance decimal.Decimal `json:"projected_balance"`
}

// AccountProjection is the projection row of one account in its own currency.
// CurrentBalance counts recorded one-off transactions only; RecurringExcluded
// is the net of the recurring templates it leaves out, so the two add up to
// the account's ledger balance as of the projection date.
type AccountProjection struct {
	AccountID          uuid.UUID           `json:"account_id"`
	AccountName        string              `json:"account_name"`
	Currency           string              `json:"currency"`
	CurrentBalance     decimal.Decimal     `json:"current_balance"`
	RecurringExcluded  decimal.Decimal     `json:"recurring_excluded"`
	MonthlyProjections []MonthlyProjection `json:"monthly_projections"`
}

// GrandTotal is one month summed across accounts in the reporting currency
type GrandTotal struct {
	Month        string          `json:"month"`
	TotalIncome  decimal.Decimal `json:"total_income_cad"`
	TotalExpense decimal.Decimal `json:"total_expense_cad"`
	TotalBalance decimal.Decimal `json:"total_balance_cad"`
}

// ProjectionSummary totals the converted recurring flows over the horizon
type ProjectionSummary struct {
	TotalProjectedIncome  decimal.Decimal `json:"total_projected_income_cad"`
	TotalProjectedExpense decimal.Decimal `json:"total_projected_expense_cad"`
	ProjectedNet          decimal.Decimal `json:"projected_net_cad"`
}

// ProjectionResponse is the body of GET /projections
type ProjectionResponse struct {
	AsOf               string                  `json:"as_of"`
	ReportingCurrency  string                  `json:"reporting_currency"`
	Months             []string                `json:"months"`
	AccountProjections []AccountProjection     `json:"account_projections"`
	GrandTotals        []GrandTotal            `json:"grand_totals"`
	Summary            ProjectionSummary       `json:"summary"`
	OmittedAccounts    []uuid.UUID             `json:"omitted_accounts"`
	Rates              []projection.Conversion `json:"rates"`
}

// NewProjectionResponse rounds the engine result to cents for presentation.
func NewProjectionResponse(asOf time.Time, result projection.Result) ProjectionResponse {
	resp := ProjectionResponse{
		AsOf:               asOf.Format(DateLayout),
		ReportingCurrency:  result.GrandTotal.Currency,
		Months:             result.Months,
		AccountProjections: make([]AccountProjection, 0, len(result.Rows)),
		GrandTotals:        make([]GrandTotal, 0, projection.Horizon),
		Summary: ProjectionSummary{
			TotalProjectedIncome:  result.Summary.ProjectedIncome.Round(2),
			TotalProjectedExpense: result.Summary.ProjectedExpense.Round(2),
			ProjectedNet:          result.Summary.ProjectedNet.Round(2),
		},
		OmittedAccounts: result.OmittedAccounts,
		Rates:           result.Conversions,
	}
	if resp.Months == nil {
		resp.Months = projection.Labels(asOf)
	}
	if resp.OmittedAccounts == nil {
		resp.OmittedAccounts = []uuid.UUID{}
	}
	if resp.Rates == nil {
		resp.Rates = []projection.Conversion{}
	}

	for _, row := range result.Rows {
		ap := AccountProjection{
			AccountID:          row.AccountID,
			AccountName:        row.AccountName,
			Currency:           row.Currency,
			CurrentBalance:     row.CurrentBalance.Round(2),
			RecurringExcluded:  row.RecurringNet.Round(2),
			MonthlyProjections: make([]MonthlyProjection, 0, projection.Horizon),
		}
		for _, m := range row.Months {
			ap.MonthlyProjections = append(ap.MonthlyProjections, MonthlyProjection{
				Month:            m.Label,
				Income:           m.Income.Round(2),
				Expense:          m.Expense.Round(2),
				ProjectedBalance: m.Balance.Round(2),
			})
		}
		resp.AccountProjections = append(resp.AccountProjections, ap)
	}

	gt := result.GrandTotal
	for i, label := range resp.Months {
		if i >= projection.Horizon {
			break
		}
		resp.GrandTotals = append(resp.GrandTotals, GrandTotal{
			Month:        label,
			TotalIncome:  gt.MonthlyIncome[i].Round(2),
			TotalExpense: gt.MonthlyExpense[i].Round(2),
			TotalBalance: gt.MonthlyTotals[i].Round(2),
		})
	}

	return resp
}
