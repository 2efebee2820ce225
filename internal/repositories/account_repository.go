package repositories

import (
	"errors"
	"fmt"

	"cashflow-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new account. A default account takes the flag from the
// user's other accounts.
func (r *accountRepository) Create(account *models.Account) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if account.IsDefault {
			if err := clearDefault(tx, account.UserID, uuid.Nil); err != nil {
				return err
			}
		}

		if err := tx.Create(account).Error; err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an account by ID
func (r *accountRepository) GetByID(id uuid.UUID) (*models.Account, error) {
	account := &models.Account{ID: id}
	if err := r.db.First(account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetByIDForUser retrieves an account only if userID owns it
func (r *accountRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetByUserID retrieves all accounts for a user, oldest first
func (r *accountRepository) GetByUserID(userID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts for user: %w", err)
	}
	return accounts, nil
}

// Update updates an account
func (r *accountRepository) Update(account *models.Account) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if account.IsDefault {
			if err := clearDefault(tx, account.UserID, account.ID); err != nil {
				return err
			}
		}

		if err := tx.Save(account).Error; err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		return nil
	})
}

// Delete removes an account
func (r *accountRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Account{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// CountTransactions returns how many transactions reference the account
func (r *accountRepository) CountTransactions(accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).Where("account_id = ?", accountID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count account transactions: %w", err)
	}
	return count, nil
}

// GetTotals returns the all-time income and expense sums of one account
func (r *accountRepository) GetTotals(accountID uuid.UUID) (income, expense decimal.Decimal, err error) {
	var rows []typeSum
	if err := r.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("account_id = ?", accountID).
		Group("type").
		Scan(&rows).Error; err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to get account totals: %w", err)
	}

	totals := foldTypeSums(rows)
	return totals.Income, totals.Expense, nil
}

// GetTotalsByUserID returns all-time income and expense sums keyed by account
func (r *accountRepository) GetTotalsByUserID(userID uuid.UUID) (map[uuid.UUID]models.TypeTotals, error) {
	var rows []struct {
		AccountID uuid.UUID
		Type      string
		Total     decimal.Decimal
		Count     int
	}
	if err := r.db.Model(&models.Transaction{}).
		Select("account_id, type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("account_id, type").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get account totals: %w", err)
	}

	totals := make(map[uuid.UUID]models.TypeTotals)
	for _, row := range rows {
		sum := typeSum{Type: row.Type, Total: row.Total, Count: row.Count}
		totals[row.AccountID] = addTypeSum(totals[row.AccountID], sum)
	}
	return totals, nil
}

// clearDefault unsets is_default on every account of userID except keep.
func clearDefault(tx *gorm.DB, userID, keep uuid.UUID) error {
	if err := tx.Model(&models.Account{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, keep, true).
		UpdateColumn("is_default", false).Error; err != nil {
		return fmt.Errorf("failed to clear default account: %w", err)
	}
	return nil
}

// typeSum is one row of a SUM(amount) ... GROUP BY type query.
type typeSum struct {
	Type  string
	Total decimal.Decimal
	Count int
}

func addTypeSum(totals models.TypeTotals, row typeSum) models.TypeTotals {
	switch row.Type {
	case models.TransactionTypeIncome:
		totals.Income = totals.Income.Add(row.Total)
	case models.TransactionTypeExpense:
		totals.Expense = totals.Expense.Add(row.Total)
	}
	totals.Count += row.Count
	return totals
}

func foldTypeSums(rows []typeSum) models.TypeTotals {
	totals := models.TypeTotals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, row := range rows {
		totals = addTypeSum(totals, row)
	}
	return totals
}
