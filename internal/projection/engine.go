package projection

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// calendarDate drops the time-of-day and location so transaction dates
// compare as plain calendar dates.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentBalance is the account's opening balance plus income minus expense
// over its transactions dated on or before asOf. Recurring transactions are
// schedule templates and only contribute through their projected occurrences.
func CurrentBalance(account Account, txns []Transaction, asOf time.Time) decimal.Decimal {
	cutoff := calendarDate(asOf)
	balance := account.OpeningBalance

	for _, t := range txns {
		if t.AccountID != account.ID || t.IsRecurring {
			continue
		}
		if calendarDate(t.Date).After(cutoff) {
			continue
		}
		balance = balance.Add(t.signed())
	}

	return balance
}

// RecurringNet is the signed sum of the account's recurring templates dated
// on or before asOf. Adding it to CurrentBalance gives the ledger balance
// that counts every recorded transaction.
func RecurringNet(account Account, txns []Transaction, asOf time.Time) decimal.Decimal {
	cutoff := calendarDate(asOf)
	net := decimal.Zero

	for _, t := range txns {
		if t.AccountID != account.ID || !t.IsRecurring {
			continue
		}
		if calendarDate(t.Date).After(cutoff) {
			continue
		}
		net = net.Add(t.signed())
	}

	return net
}

// recurring pairs a template transaction with its rule.
type recurring struct {
	txn   Transaction
	rule  Rule
	start Month
}

// recurringFor collects the recurring templates of an account.
func recurringFor(accountID uuid.UUID, txns []Transaction) []recurring {
	var out []recurring
	for _, t := range txns {
		if t.AccountID != accountID {
			continue
		}
		rule, ok := RuleFor(t)
		if !ok {
			continue
		}
		out = append(out, recurring{txn: t, rule: rule, start: MonthOf(t.Date)})
	}
	return out
}

// monthFlows sums the occurrences of every template landing in m. A
// template is active from the calendar month of its own date onwards.
func monthFlows(templates []recurring, m Month) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero

	for _, r := range templates {
		if m.Before(r.start) {
			continue
		}
		n := decimal.NewFromInt(int64(len(Occurrences(r.rule, m))))
		amount := r.txn.Amount.Mul(n)

		switch r.txn.Type {
		case TypeIncome:
			income = income.Add(amount)
		case TypeExpense:
			expense = expense.Add(amount)
		}
	}

	return income, expense
}

// ProjectAccount builds the projection row for a single account.
func ProjectAccount(account Account, txns []Transaction, asOf time.Time) Row {
	row := Row{
		AccountID:      account.ID,
		AccountName:    account.Name,
		Currency:       account.Currency,
		CurrentBalance: CurrentBalance(account, txns, asOf),
		RecurringNet:   RecurringNet(account, txns, asOf),
	}

	templates := recurringFor(account.ID, txns)
	balance := row.CurrentBalance

	for i, m := range Months(asOf) {
		income, expense := monthFlows(templates, m)
		balance = balance.Add(income).Sub(expense)

		row.Months[i] = MonthProjection{
			Month:   m,
			Label:   m.Label(),
			Income:  income,
			Expense: expense,
			Balance: balance,
		}
	}

	return row
}

// ComputeProjections returns one row per account, in input order. Recorded
// non-recurring transactions affect only the starting balance.
func ComputeProjections(accounts []Account, txns []Transaction, asOf time.Time) []Row {
	if len(accounts) == 0 {
		return []Row{}
	}

	byAccount := make(map[uuid.UUID][]Transaction, len(accounts))
	for _, t := range txns {
		byAccount[t.AccountID] = append(byAccount[t.AccountID], t)
	}

	rows := make([]Row, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, ProjectAccount(a, byAccount[a.ID], asOf))
	}
	return rows
}

// Project runs ComputeProjections and aggregates the rows with rates.
func Project(in Input, rates Rates) Result {
	rows := ComputeProjections(in.Accounts, in.Transactions, in.AsOf)
	result := Aggregate(rows, rates)
	result.Months = Labels(in.AsOf)
	return result
}
