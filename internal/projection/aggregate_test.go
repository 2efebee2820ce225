package projection

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AggregateTestSuite struct {
	suite.Suite
	asOf  time.Time
	rates Rates
}

func (s *AggregateTestSuite) SetupTest() {
	s.asOf = date(2026, time.January, 20)
	s.rates = NewRates(CurrencyCAD)
	s.rates.Add(Conversion{From: CurrencyUSD, To: CurrencyCAD, Rate: dec("1.37"), AsOf: s.asOf})
	s.rates.Add(Conversion{From: CurrencyEUR, To: CurrencyCAD, Rate: dec("1.5"), AsOf: s.asOf})
}

func TestAggregateTestSuite(t *testing.T) {
	suite.Run(t, new(AggregateTestSuite))
}

func (s *AggregateTestSuite) TestGrandTotalIsSumOfConvertedBalances() {
	cad := newAccount(CurrencyCAD, "1000")
	usd := newAccount(CurrencyUSD, "250")
	eur := newAccount(CurrencyEUR, "-40")
	txns := []Transaction{
		recurringTxn(cad, TypeExpense, "200", date(2026, time.January, 5), FrequencyMonthly),
		recurringTxn(usd, TypeIncome, "100", date(2026, time.January, 1), FrequencyTwiceMonthly),
	}
	rows := ComputeProjections([]Account{cad, usd, eur}, txns, s.asOf)

	result := Aggregate(rows, s.rates)

	s.Len(result.Rows, 3)
	s.Empty(result.OmittedAccounts)
	s.Equal(CurrencyCAD, result.GrandTotal.Currency)
	for i := 0; i < Horizon; i++ {
		want := rows[0].Months[i].Balance.
			Add(rows[1].Months[i].Balance.Mul(dec("1.37"))).
			Add(rows[2].Months[i].Balance.Mul(dec("1.5")))
		got := result.GrandTotal.MonthlyTotals[i]
		s.True(want.Equal(got), "month %d: want %s, got %s", i+1, want, got)
	}
	// month 1: 800 + 450*1.37 + -40*1.5
	s.True(dec("1356.5").Equal(result.GrandTotal.MonthlyTotals[0]), "got %s", result.GrandTotal.MonthlyTotals[0])
}

func (s *AggregateTestSuite) TestUnavailableRateOmitsAccountButKeepsRow() {
	cad := newAccount(CurrencyCAD, "100")
	gbp := newAccount(CurrencyGBP, "1000000")
	rows := ComputeProjections([]Account{cad, gbp}, nil, s.asOf)

	result := Aggregate(rows, s.rates)

	s.Equal([]uuid.UUID{gbp.ID}, result.OmittedAccounts)
	s.Len(result.Rows, 2)
	s.Equal(gbp.ID, result.Rows[1].AccountID)
	s.True(dec("1000000").Equal(result.Rows[1].Months[0].Balance))
	for i := 0; i < Horizon; i++ {
		s.True(dec("100").Equal(result.GrandTotal.MonthlyTotals[i]))
	}
}

func (s *AggregateTestSuite) TestReportingCurrencyNeedsNoRate() {
	cad := newAccount(CurrencyCAD, "42")
	rows := ComputeProjections([]Account{cad}, nil, s.asOf)

	result := Aggregate(rows, NewRates(CurrencyCAD))

	s.Empty(result.OmittedAccounts)
	s.Empty(result.Conversions)
	s.True(dec("42").Equal(result.GrandTotal.MonthlyTotals[5]))
}

func (s *AggregateTestSuite) TestSummaryOverSixMonths() {
	acct := newAccount(CurrencyCAD, "0")
	txns := []Transaction{
		recurringTxn(acct, TypeIncome, "5000", date(2026, time.January, 1), FrequencyMonthly),
		recurringTxn(acct, TypeExpense, "1500", date(2026, time.January, 1), FrequencyMonthly),
		recurringTxn(acct, TypeExpense, "200", date(2026, time.January, 1), FrequencyTwiceMonthly),
	}

	result := Project(Input{Accounts: []Account{acct}, Transactions: txns, AsOf: s.asOf}, s.rates)

	s.True(dec("30000").Equal(result.Summary.ProjectedIncome), "income %s", result.Summary.ProjectedIncome)
	s.True(dec("11400").Equal(result.Summary.ProjectedExpense), "expense %s", result.Summary.ProjectedExpense)
	s.True(dec("18600").Equal(result.Summary.ProjectedNet), "net %s", result.Summary.ProjectedNet)
	s.True(dec("5000").Equal(result.GrandTotal.MonthlyIncome[0]))
	s.True(dec("1900").Equal(result.GrandTotal.MonthlyExpense[0]))
	s.Len(result.Months, Horizon)
	s.Equal("Feb 2026", result.Months[0])
}

func (s *AggregateTestSuite) TestEmptyInput() {
	result := Project(Input{AsOf: s.asOf}, s.rates)

	s.NotNil(result.Rows)
	s.Empty(result.Rows)
	s.Empty(result.OmittedAccounts)
	s.True(result.Summary.ProjectedNet.IsZero())
	for i := 0; i < Horizon; i++ {
		s.True(result.GrandTotal.MonthlyTotals[i].IsZero())
	}
}

func (s *AggregateTestSuite) TestRatesIgnoreUnusableConversions() {
	rates := NewRates(CurrencyCAD)
	rates.Add(Conversion{From: CurrencyUSD, To: CurrencyEUR, Rate: dec("0.9")})
	rates.Add(Conversion{From: CurrencyGBP, To: CurrencyCAD, Rate: dec("0")})
	rates.Add(Conversion{From: CurrencyAUD, To: CurrencyCAD, Rate: dec("-1")})

	_, ok := rates.Lookup(CurrencyUSD)
	s.False(ok)
	_, ok = rates.Lookup(CurrencyGBP)
	s.False(ok)
	_, ok = rates.Lookup(CurrencyAUD)
	s.False(ok)

	rate, ok := rates.Lookup(CurrencyCAD)
	s.True(ok)
	s.True(rate.Equal(dec("1")))

	var zero Rates
	zero.Reporting = CurrencyCAD
	zero.Add(Conversion{From: CurrencyUSD, To: CurrencyCAD, Rate: dec("1.3")})
	rate, ok = zero.Lookup(CurrencyUSD)
	s.True(ok)
	s.True(rate.Equal(dec("1.3")))
}
