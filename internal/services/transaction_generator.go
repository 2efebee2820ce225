package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	demoSalaryDay        = 25
	demoRentDay          = 1
	minDailyPurchases    = 0
	maxDailyPurchases    = 2
	demoMaxHistoryMonths = 12
)

var ErrNoDemoCategories = errors.New("user has no categories to attach demo transactions to")

// spendingRanges bounds generated amounts per default expense category.
var spendingRanges = map[string][2]float64{
	"Food & Dining":     {8.00, 120.00},
	"Transportation":    {10.00, 80.00},
	"Shopping":          {25.00, 250.00},
	"Entertainment":     {10.00, 60.00},
	"Bills & Utilities": {40.00, 180.00},
	"Healthcare":        {20.00, 150.00},
}

type transactionGenerator struct {
	rng *rand.Rand
}

// NewTransactionGenerator creates a generator of realistic demo ledgers
func NewTransactionGenerator() TransactionGeneratorInterface {
	return newSeededGenerator(time.Now().UnixNano())
}

func newSeededGenerator(seed int64) *transactionGenerator {
	return &transactionGenerator{rng: rand.New(rand.NewSource(seed))}
}

// GenerateRecurring returns a monthly salary, a monthly rent payment and
// twice-monthly groceries starting in start's month. Templates whose
// category is missing are skipped.
func (g *transactionGenerator) GenerateRecurring(userID, accountID uuid.UUID, categories []models.Category, start time.Time) []*models.Transaction {
	salaries := []int64{3500, 4200, 5000, 6100}
	rents := []int64{1200, 1500, 1850}
	groceries := []int64{150, 200, 240}

	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	templates := []struct {
		category  string
		txnType   string
		amount    int64
		day       int
		frequency string
		desc      string
	}{
		{"Salary", models.TransactionTypeIncome, salaries[g.rng.Intn(len(salaries))], demoSalaryDay, models.FrequencyMonthly, "Payroll deposit"},
		{"Bills & Utilities", models.TransactionTypeExpense, rents[g.rng.Intn(len(rents))], demoRentDay, models.FrequencyMonthly, "Rent"},
		{"Food & Dining", models.TransactionTypeExpense, groceries[g.rng.Intn(len(groceries))], 1, models.FrequencyTwiceMonthly, "Groceries"},
	}

	out := make([]*models.Transaction, 0, len(templates))
	for _, t := range templates {
		category, ok := findCategory(categories, t.category, t.txnType)
		if !ok {
			continue
		}
		out = append(out, &models.Transaction{
			UserID:             userID,
			AccountID:          accountID,
			CategoryID:         category.ID,
			Type:               t.txnType,
			Amount:             decimal.NewFromInt(t.amount),
			Description:        t.desc,
			Date:               first.AddDate(0, 0, t.day-1),
			IsRecurring:        true,
			RecurringFrequency: t.frequency,
		})
	}
	return out
}

// GenerateHistory returns one-off purchases spread over [start, end), at
// most maxDailyPurchases per day, in date order.
func (g *transactionGenerator) GenerateHistory(userID, accountID uuid.UUID, categories []models.Category, start, end time.Time) []*models.Transaction {
	var expense []models.Category
	for _, c := range categories {
		if c.Type == models.TransactionTypeExpense {
			expense = append(expense, c)
		}
	}
	if len(expense) == 0 {
		return nil
	}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	var out []*models.Transaction
	for ; day.Before(end); day = day.AddDate(0, 0, 1) {
		n := minDailyPurchases + g.rng.Intn(maxDailyPurchases-minDailyPurchases+1)
		for i := 0; i < n; i++ {
			category := expense[g.rng.Intn(len(expense))]
			out = append(out, &models.Transaction{
				UserID:      userID,
				AccountID:   accountID,
				CategoryID:  category.ID,
				Type:        models.TransactionTypeExpense,
				Amount:      g.amountFor(category.Name),
				Description: gofakeit.Company(),
				Date:        day,
			})
		}
	}
	return out
}

func (g *transactionGenerator) amountFor(categoryName string) decimal.Decimal {
	bounds, ok := spendingRanges[categoryName]
	if !ok {
		bounds = [2]float64{10.00, 100.00}
	}
	amount := bounds[0] + g.rng.Float64()*(bounds[1]-bounds[0])
	return decimal.NewFromFloat(amount).Round(2)
}

func findCategory(categories []models.Category, name, txnType string) (models.Category, bool) {
	for _, c := range categories {
		if c.Name == name && c.Type == txnType {
			return c, true
		}
	}
	for _, c := range categories {
		if c.Type == txnType {
			return c, true
		}
	}
	return models.Category{}, false
}

// demoDataService fills a user's default account with generated activity
type demoDataService struct {
	accountRepo     repositories.AccountRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	generator       TransactionGeneratorInterface
	logger          *slog.Logger
}

// NewDemoDataService creates the service behind the seed command
func NewDemoDataService(
	accountRepo repositories.AccountRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	generator TransactionGeneratorInterface,
	logger *slog.Logger,
) DemoDataServiceInterface {
	return &demoDataService{
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		generator:       generator,
		logger:          logger,
	}
}

// Seed adds recurring templates and months of one-off history ending at now
// to the user's default account, and returns how many were stored.
func (s *demoDataService) Seed(userID uuid.UUID, months int, now time.Time) (int, error) {
	if months < 1 || months > demoMaxHistoryMonths {
		return 0, fmt.Errorf("%w: history must cover 1 to %d months", ErrInvalidPeriod, demoMaxHistoryMonths)
	}

	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get accounts: %w", err)
	}
	if len(accounts) == 0 {
		return 0, ErrAccountNotFound
	}
	account := accounts[0]
	for _, a := range accounts {
		if a.IsDefault {
			account = a
			break
		}
	}

	categories, err := s.categoryRepo.GetByUserID(userID, "")
	if err != nil {
		return 0, fmt.Errorf("failed to get categories: %w", err)
	}
	if len(categories) == 0 {
		return 0, ErrNoDemoCategories
	}

	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -months, 0)

	transactions := s.generator.GenerateRecurring(userID, account.ID, categories, start)
	transactions = append(transactions, s.generator.GenerateHistory(userID, account.ID, categories, start, end)...)

	for i, txn := range transactions {
		if err := s.transactionRepo.Create(txn); err != nil {
			return i, fmt.Errorf("failed to store demo transaction: %w", err)
		}
	}

	s.logger.Info("seeded demo transactions",
		"user_id", userID,
		"account_id", account.ID,
		"count", len(transactions))
	return len(transactions), nil
}
