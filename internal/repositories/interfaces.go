package repositories

import (
	"time"

	"cashflow-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	// CreateWithDefaults stores the user together with its starter
	// categories and default account, all or nothing.
	CreateWithDefaults(user *models.User, categories []models.Category, account *models.Account) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateLastLogin(userID uuid.UUID, at time.Time) error
}

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Account, error)
	GetByUserID(userID uuid.UUID) ([]models.Account, error)
	Update(account *models.Account) error
	Delete(id uuid.UUID) error
	CountTransactions(accountID uuid.UUID) (int64, error)
	GetTotals(accountID uuid.UUID) (income, expense decimal.Decimal, err error)
	GetTotalsByUserID(userID uuid.UUID) (map[uuid.UUID]models.TypeTotals, error)
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByIDForUser(id, userID uuid.UUID) (*models.Category, error)
	GetByUserID(userID uuid.UUID, categoryType string) ([]models.Category, error)
	GetByIDs(userID uuid.UUID, ids []uuid.UUID) ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uuid.UUID) error
	CountUsage(categoryID uuid.UUID) (int64, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByIDForUser(id, userID uuid.UUID) (*models.Transaction, error)
	GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, error)
	GetByUserID(userID uuid.UUID) ([]models.Transaction, error)
	Update(transaction *models.Transaction) error
	Delete(id uuid.UUID) error

	// Window queries cover [start, end). A nil accountID spans every account.
	GetTypeTotals(userID uuid.UUID, accountID *uuid.UUID, start, end time.Time) (models.TypeTotals, error)
	GetCategoryTotals(userID uuid.UUID, transactionType string, accountID *uuid.UUID, start, end time.Time) ([]models.CategoryTotal, error)
}

// BudgetRepositoryInterface defines the contract for budget repository operations
type BudgetRepositoryInterface interface {
	Create(budget *models.Budget) error
	GetByIDForUser(id, userID uuid.UUID) (*models.Budget, error)
	GetByUserID(userID uuid.UUID) ([]models.Budget, error)
	Update(budget *models.Budget) error
	Delete(id uuid.UUID) error
}

// AuditLogRepositoryInterface defines the contract for audit log repository operations
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	GetByUserID(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
	GetByAction(action string, offset, limit int) ([]*models.AuditLog, int64, error)
	GetFailedLoginAttempts(email string, since time.Time) (int64, error)
	DeleteOlderThan(duration time.Duration) (int64, error)
}
