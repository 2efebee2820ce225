// Package projection computes forward balance projections for a set of
// accounts from a read-only snapshot of their transactions.
//
// Everything in this package is pure: no clocks, no I/O, no shared state.
// Callers resolve conversion rates up front and pass them in as Rates.
package projection

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Horizon is the number of calendar months projected after the as-of month.
const Horizon = 6

const (
	CurrencyCAD = "CAD"
	CurrencyUSD = "USD"
	CurrencyGBP = "GBP"
	CurrencyEUR = "EUR"
	CurrencyAUD = "AUD"

	// ReportingCurrency is the currency grand totals are expressed in.
	ReportingCurrency = CurrencyCAD
)

// SupportedCurrencies lists every currency an account may hold.
var SupportedCurrencies = []string{CurrencyCAD, CurrencyUSD, CurrencyGBP, CurrencyEUR, CurrencyAUD}

// IsSupportedCurrency reports whether code is one of SupportedCurrencies.
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type Frequency string

const (
	FrequencyUnset        Frequency = ""
	FrequencyMonthly      Frequency = "monthly"
	FrequencyTwiceMonthly Frequency = "twice_monthly"
)

// Account is the engine's view of an account.
type Account struct {
	ID             uuid.UUID
	Name           string
	Currency       string
	OpeningBalance decimal.Decimal
	IsDefault      bool
}

// Transaction is the engine's view of a recorded transaction. Amount is
// never negative; the sign comes from Type.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	Date        time.Time
	IsRecurring bool
	Frequency   Frequency
}

// signed returns the amount as a balance delta.
func (t Transaction) signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Input is the snapshot handed to Project.
type Input struct {
	Accounts     []Account
	Transactions []Transaction
	AsOf         time.Time
}

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Next returns the calendar month after m.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Before reports whether m is strictly earlier than other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// Days returns the number of days in m.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date returns the given day of m at midnight UTC.
func (m Month) Date(day int) time.Time {
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC)
}

// Label formats m as "Jan 2006".
func (m Month) Label() string {
	return m.Date(1).Format("Jan 2006")
}

// Months returns the Horizon calendar months that follow asOf's month.
func Months(asOf time.Time) [Horizon]Month {
	var out [Horizon]Month
	m := MonthOf(asOf)
	for i := range out {
		m = m.Next()
		out[i] = m
	}
	return out
}

// Labels returns the labels of Months(asOf).
func Labels(asOf time.Time) []string {
	months := Months(asOf)
	labels := make([]string, 0, Horizon)
	for _, m := range months {
		labels = append(labels, m.Label())
	}
	return labels
}

// MonthProjection is one cell of a projection row.
type MonthProjection struct {
	Month   Month
	Label   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Row is the projected end-of-month balance of one account for each month
// of the horizon, carried forward from its current actual balance.
type Row struct {
	AccountID      uuid.UUID
	AccountName    string
	Currency       string
	CurrentBalance decimal.Decimal
	// RecurringNet is the signed sum of the recurring templates dated on or
	// before asOf. CurrentBalance leaves it out.
	RecurringNet   decimal.Decimal
	Months         [Horizon]MonthProjection
}

// Labels returns the row's month labels in order.
func (r Row) Labels() []string {
	out := make([]string, 0, Horizon)
	for _, m := range r.Months {
		out = append(out, m.Label)
	}
	return out
}

// Balances returns the row's projected balances in order.
func (r Row) Balances() []decimal.Decimal {
	out := make([]decimal.Decimal, 0, Horizon)
	for _, m := range r.Months {
		out = append(out, m.Balance)
	}
	return out
}

// GrandTotal holds per-month figures summed across accounts in Currency.
type GrandTotal struct {
	Currency       string
	MonthlyTotals  [Horizon]decimal.Decimal
	MonthlyIncome  [Horizon]decimal.Decimal
	MonthlyExpense [Horizon]decimal.Decimal
}

// Summary totals the converted recurring flows over the whole horizon.
type Summary struct {
	ProjectedIncome  decimal.Decimal
	ProjectedExpense decimal.Decimal
	ProjectedNet     decimal.Decimal
}

// Result is the full engine output.
type Result struct {
	Months          []string
	Rows            []Row
	GrandTotal      GrandTotal
	Summary         Summary
	OmittedAccounts []uuid.UUID
	Conversions     []Conversion
}
