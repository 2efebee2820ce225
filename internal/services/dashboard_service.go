package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/projection"
	"cashflow-tracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultTrendMonths = 6
	MaxTrendMonths     = 24
)

var ErrInvalidPeriod = errors.New("invalid reporting period")

var hundred = decimal.NewFromInt(100)

type dashboardService struct {
	accounts        AccountServiceInterface
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	rateProvider    RateProviderInterface
	reporting       string
	logger          *slog.Logger
	now             func() time.Time
}

// NewDashboardService creates the service behind the dashboard views.
// Balances are converted into reportingCurrency by TotalCash.
func NewDashboardService(
	accounts AccountServiceInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	rateProvider RateProviderInterface,
	reportingCurrency string,
	logger *slog.Logger,
) DashboardServiceInterface {
	if reportingCurrency == "" {
		reportingCurrency = projection.ReportingCurrency
	}
	return &dashboardService{
		accounts:        accounts,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		rateProvider:    rateProvider,
		reporting:       reportingCurrency,
		logger:          logger,
		now:             time.Now,
	}
}

// Overview summarises one calendar month and lists every account's
// all-time balance.
func (s *dashboardService) Overview(userID uuid.UUID, year int, month time.Month, accountID *uuid.UUID) (*models.DashboardOverview, error) {
	start, end, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	totals, err := s.transactionRepo.GetTypeTotals(userID, accountID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly totals: %w", err)
	}

	balances, err := s.accounts.GetBalances(userID)
	if err != nil {
		return nil, err
	}

	net := totals.Income.Sub(totals.Expense)
	return &models.DashboardOverview{
		Month:            int(month),
		Year:             year,
		TotalIncome:      totals.Income,
		TotalExpense:     totals.Expense,
		NetBalance:       net,
		SavingsRate:      savingsRate(totals.Income, net),
		TransactionCount: totals.Count,
		AccountBalances:  balances,
	}, nil
}

// Trends returns income and expense for the last months calendar months
// ending with now's month, oldest first.
func (s *dashboardService) Trends(userID uuid.UUID, now time.Time, months int, accountID *uuid.UUID) ([]models.TrendPoint, error) {
	if months <= 0 {
		months = DefaultTrendMonths
	}
	if months > MaxTrendMonths {
		return nil, fmt.Errorf("%w: at most %d months", ErrInvalidPeriod, MaxTrendMonths)
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	points := make([]models.TrendPoint, 0, months)
	for i := 0; i < months; i++ {
		start := first.AddDate(0, i, 0)
		end := start.AddDate(0, 1, 0)

		totals, err := s.transactionRepo.GetTypeTotals(userID, accountID, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to get totals for %s: %w", start.Format("Jan 2006"), err)
		}

		points = append(points, models.TrendPoint{
			Month:   start.Format("Jan 2006"),
			Income:  totals.Income,
			Expense: totals.Expense,
			Net:     totals.Income.Sub(totals.Expense),
		})
	}
	return points, nil
}

// CategoryBreakdown totals one transaction type per category for a month,
// largest first. Totals for categories the user no longer owns are dropped.
func (s *dashboardService) CategoryBreakdown(userID uuid.UUID, year int, month time.Month, transactionType string, accountID *uuid.UUID) ([]models.CategoryBreakdownItem, error) {
	if transactionType == "" {
		transactionType = models.TransactionTypeExpense
	}
	if !models.IsValidTransactionType(transactionType) {
		return nil, models.ErrInvalidTransactionType
	}

	start, end, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	totals, err := s.transactionRepo.GetCategoryTotals(userID, transactionType, accountID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}
	if len(totals) == 0 {
		return []models.CategoryBreakdownItem{}, nil
	}

	ids := make([]uuid.UUID, 0, len(totals))
	for _, t := range totals {
		ids = append(ids, t.CategoryID)
	}

	categories, err := s.categoryRepo.GetByIDs(userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	byID := make(map[uuid.UUID]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	items := make([]models.CategoryBreakdownItem, 0, len(totals))
	for _, t := range totals {
		c, ok := byID[t.CategoryID]
		if !ok {
			continue
		}
		items = append(items, models.CategoryBreakdownItem{
			CategoryID: c.ID,
			Category:   c.Name,
			Amount:     t.Amount,
			Color:      c.Color,
			Icon:       c.Icon,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Amount.GreaterThan(items[j].Amount)
	})
	return items, nil
}

// TotalCash converts every account's current balance into the reporting
// currency. Any rate that cannot be resolved fails the whole view.
func (s *dashboardService) TotalCash(ctx context.Context, userID uuid.UUID) (*models.TotalCash, error) {
	balances, err := s.accounts.GetBalances(userID)
	if err != nil {
		return nil, err
	}

	result := &models.TotalCash{
		Total:        decimal.Zero,
		BaseCurrency: s.reporting,
		Accounts:     make([]models.CashAccount, 0, len(balances)),
		RatesSource:  s.rateProvider.Source(),
	}

	resolved := make(map[string]projection.Conversion)
	for _, b := range balances {
		rate := decimal.NewFromInt(1)
		if b.Currency != s.reporting {
			conv, ok := resolved[b.Currency]
			if !ok {
				conv, err = s.rateProvider.GetConversionRate(ctx, b.Currency, s.reporting)
				if err != nil {
					s.logger.Warn("total cash unavailable",
						"error", err,
						"user_id", userID,
						"currency", b.Currency)
					return nil, err
				}
				resolved[b.Currency] = conv
				if conv.AsOf.After(result.LastUpdated) {
					result.LastUpdated = conv.AsOf
				}
			}
			rate = conv.Rate
		}

		converted := b.CurrentBalance.Mul(rate)
		result.Total = result.Total.Add(converted)
		result.Accounts = append(result.Accounts, models.CashAccount{
			ID:               b.AccountID,
			Name:             b.AccountName,
			Currency:         b.Currency,
			OriginalBalance:  b.CurrentBalance,
			ConvertedBalance: converted.Round(2),
			ExchangeRate:     rate,
			IsDefault:        b.IsDefault,
		})
	}

	if result.LastUpdated.IsZero() {
		result.LastUpdated = s.now().UTC()
	}
	result.Total = result.Total.Round(2)
	return result, nil
}

// monthWindow returns [first day of month, first day of next month) in UTC.
func monthWindow(year int, month time.Month) (time.Time, time.Time, error) {
	if month < time.January || month > time.December || year < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %04d-%02d", ErrInvalidPeriod, year, int(month))
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

// savingsRate is net as a percentage of income, 0 without income.
func savingsRate(income, net decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return net.Div(income).Mul(hundred).Round(2)
}
