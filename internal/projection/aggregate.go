package projection

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrRateUnavailable is returned by rate providers that cannot supply a rate.
var ErrRateUnavailable = errors.New("conversion rate unavailable")

// Conversion is a point-in-time rate from From into To: one unit of From is
// worth Rate units of To.
type Conversion struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
	AsOf time.Time       `json:"as_of"`
}

// Rates holds already-resolved conversions into Reporting, keyed by source
// currency. A currency missing from Conversions is treated as unavailable.
type Rates struct {
	Reporting   string
	Conversions map[string]Conversion
}

// NewRates returns an empty rate table for the reporting currency.
func NewRates(reporting string) Rates {
	return Rates{Reporting: reporting, Conversions: make(map[string]Conversion)}
}

// Add records c, ignoring conversions into another currency or with a
// non-positive rate.
func (r *Rates) Add(c Conversion) {
	if c.To != r.Reporting || !c.Rate.IsPositive() {
		return
	}
	if r.Conversions == nil {
		r.Conversions = make(map[string]Conversion)
	}
	r.Conversions[c.From] = c
}

// Lookup returns the multiplier that converts currency into Reporting.
func (r Rates) Lookup(currency string) (decimal.Decimal, bool) {
	if currency == r.Reporting {
		return decimal.NewFromInt(1), true
	}
	c, ok := r.Conversions[currency]
	if !ok || !c.Rate.IsPositive() {
		return decimal.Zero, false
	}
	return c.Rate, true
}

// list returns the conversions sorted by source currency.
func (r Rates) list() []Conversion {
	out := make([]Conversion, 0, len(r.Conversions))
	for _, c := range r.Conversions {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out
}

// Aggregate converts each row into the reporting currency and sums them per
// month. Rows whose currency has no rate are left out of every total and
// listed in OmittedAccounts; the rows themselves are always returned.
func Aggregate(rows []Row, rates Rates) Result {
	result := Result{
		Rows:            rows,
		GrandTotal:      GrandTotal{Currency: rates.Reporting},
		OmittedAccounts: []uuid.UUID{},
		Conversions:     rates.list(),
	}
	if result.Rows == nil {
		result.Rows = []Row{}
	}

	for i := 0; i < Horizon; i++ {
		result.GrandTotal.MonthlyTotals[i] = decimal.Zero
		result.GrandTotal.MonthlyIncome[i] = decimal.Zero
		result.GrandTotal.MonthlyExpense[i] = decimal.Zero
	}

	for _, row := range rows {
		rate, ok := rates.Lookup(row.Currency)
		if !ok {
			result.OmittedAccounts = append(result.OmittedAccounts, row.AccountID)
			continue
		}

		for i, m := range row.Months {
			gt := &result.GrandTotal
			gt.MonthlyTotals[i] = gt.MonthlyTotals[i].Add(m.Balance.Mul(rate))
			gt.MonthlyIncome[i] = gt.MonthlyIncome[i].Add(m.Income.Mul(rate))
			gt.MonthlyExpense[i] = gt.MonthlyExpense[i].Add(m.Expense.Mul(rate))
		}
	}

	income, expense := decimal.Zero, decimal.Zero
	for i := 0; i < Horizon; i++ {
		income = income.Add(result.GrandTotal.MonthlyIncome[i])
		expense = expense.Add(result.GrandTotal.MonthlyExpense[i])
	}
	result.Summary = Summary{
		ProjectedIncome:  income,
		ProjectedExpense: expense,
		ProjectedNet:     income.Sub(expense),
	}

	return result
}
