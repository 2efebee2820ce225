package repositories

import (
	"errors"
	"fmt"
	"time"

	"cashflow-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByIDForUser retrieves a transaction only if userID owns it
func (r *transactionRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetWithFilters retrieves a user's transactions, newest first
func (r *transactionRepository) GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, error) {
	var transactions []models.Transaction

	query := r.db.Model(&models.Transaction{}).Where("user_id = ?", filters.UserID)

	if filters.AccountID != nil {
		query = query.Where("account_id = ?", *filters.AccountID)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date < ?", *filters.EndDate)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	if err := query.Order("date DESC, created_at DESC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get filtered transactions: %w", err)
	}

	return transactions, nil
}

// GetByUserID retrieves every transaction of a user in date order
func (r *transactionRepository) GetByUserID(userID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ?", userID).Order("date ASC, created_at ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions for user: %w", err)
	}
	return transactions, nil
}

// Update updates a transaction
func (r *transactionRepository) Update(transaction *models.Transaction) error {
	if err := r.db.Save(transaction).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// Delete removes a transaction
func (r *transactionRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// GetTypeTotals sums income and expense over [start, end)
func (r *transactionRepository) GetTypeTotals(userID uuid.UUID, accountID *uuid.UUID, start, end time.Time) (models.TypeTotals, error) {
	var rows []typeSum

	query := r.window(userID, accountID, start, end).
		Select("type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("type")

	if err := query.Scan(&rows).Error; err != nil {
		return models.TypeTotals{}, fmt.Errorf("failed to get transaction totals: %w", err)
	}

	return foldTypeSums(rows), nil
}

// GetCategoryTotals sums one transaction type per category over [start, end),
// largest first
func (r *transactionRepository) GetCategoryTotals(userID uuid.UUID, transactionType string, accountID *uuid.UUID, start, end time.Time) ([]models.CategoryTotal, error) {
	var rows []struct {
		CategoryID uuid.UUID
		Amount     decimal.Decimal
	}

	query := r.window(userID, accountID, start, end).
		Select("category_id, COALESCE(SUM(amount), 0) AS amount").
		Where("type = ?", transactionType).
		Group("category_id").
		Order("amount DESC")

	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}

	totals := make([]models.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, models.CategoryTotal{CategoryID: row.CategoryID, Amount: row.Amount})
	}
	return totals, nil
}

func (r *transactionRepository) window(userID uuid.UUID, accountID *uuid.UUID, start, end time.Time) *gorm.DB {
	query := r.db.Model(&models.Transaction{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end)
	if accountID != nil {
		query = query.Where("account_id = ?", *accountID)
	}
	return query
}
