package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardOverview summarises one calendar month.
type DashboardOverview struct {
	Month            int               `json:"month"`
	Year             int               `json:"year"`
	TotalIncome      decimal.Decimal   `json:"total_income"`
	TotalExpense     decimal.Decimal   `json:"total_expense"`
	NetBalance       decimal.Decimal   `json:"net_balance"`
	SavingsRate      decimal.Decimal   `json:"savings_rate"`
	TransactionCount int               `json:"transaction_count"`
	AccountBalances  []*AccountBalance `json:"account_balances"`
}

// TrendPoint is the income and expense of one calendar month.
type TrendPoint struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// CategoryBreakdownItem is the total of one category over a month.
type CategoryBreakdownItem struct {
	CategoryID uuid.UUID       `json:"category_id"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Color      string          `json:"color"`
	Icon       string          `json:"icon"`
}

// CategoryTotal is a raw per-category sum read from storage.
type CategoryTotal struct {
	CategoryID uuid.UUID
	Amount     decimal.Decimal
}

// TypeTotals holds income and expense sums for a query window.
type TypeTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Count   int
}

// CashAccount is one account's balance converted to the reporting currency.
type CashAccount struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Currency         string          `json:"currency"`
	OriginalBalance  decimal.Decimal `json:"original_balance"`
	ConvertedBalance decimal.Decimal `json:"balance_in_reporting_currency"`
	ExchangeRate     decimal.Decimal `json:"exchange_rate"`
	IsDefault        bool            `json:"is_default"`
}

// TotalCash is every account converted to the reporting currency.
type TotalCash struct {
	Total        decimal.Decimal `json:"total"`
	BaseCurrency string          `json:"base_currency"`
	Accounts     []CashAccount   `json:"accounts"`
	RatesSource  string          `json:"rates_source"`
	LastUpdated  time.Time       `json:"last_updated"`
}
