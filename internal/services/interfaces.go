package services

import (
	"context"
	"time"

	"cashflow-tracker/internal/dto"
	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/projection"

	"github.com/google/uuid"
)

// AuthServiceInterface defines authentication operations
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.TokenResponse, error)
	Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error)
	Me(userID uuid.UUID) (*models.User, error)
}

// TokenServiceInterface defines JWT token operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// PasswordServiceInterface defines password operations
type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// AccountServiceInterface defines bank account operations
type AccountServiceInterface interface {
	ListAccounts(userID uuid.UUID) ([]dto.AccountResponse, error)
	CreateAccount(userID uuid.UUID, req *dto.AccountRequest) (*models.Account, error)
	UpdateAccount(userID, accountID uuid.UUID, req *dto.AccountRequest) (*models.Account, error)
	DeleteAccount(userID, accountID uuid.UUID) error
	GetBalance(userID, accountID uuid.UUID) (*models.AccountBalance, error)
	GetBalances(userID uuid.UUID) ([]*models.AccountBalance, error)
}

// CategoryServiceInterface defines category operations
type CategoryServiceInterface interface {
	ListCategories(userID uuid.UUID, categoryType string) ([]models.Category, error)
	CreateCategory(userID uuid.UUID, req *dto.CategoryRequest) (*models.Category, error)
	UpdateCategory(userID, categoryID uuid.UUID, req *dto.CategoryRequest) (*models.Category, error)
	DeleteCategory(userID, categoryID uuid.UUID) error
}

// TransactionServiceInterface defines transaction operations
type TransactionServiceInterface interface {
	ListTransactions(filters models.TransactionFilters) ([]models.Transaction, error)
	CreateTransaction(userID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uuid.UUID) error
}

// BudgetServiceInterface defines budget operations
type BudgetServiceInterface interface {
	ListBudgets(userID uuid.UUID) ([]models.Budget, error)
	CreateBudget(userID uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error)
	UpdateBudget(userID, budgetID uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error)
	DeleteBudget(userID, budgetID uuid.UUID) error
}

// DashboardServiceInterface defines the reporting views
type DashboardServiceInterface interface {
	Overview(userID uuid.UUID, year int, month time.Month, accountID *uuid.UUID) (*models.DashboardOverview, error)
	Trends(userID uuid.UUID, now time.Time, months int, accountID *uuid.UUID) ([]models.TrendPoint, error)
	CategoryBreakdown(userID uuid.UUID, year int, month time.Month, transactionType string, accountID *uuid.UUID) ([]models.CategoryBreakdownItem, error)
	TotalCash(ctx context.Context, userID uuid.UUID) (*models.TotalCash, error)
}

// RateProviderInterface resolves conversion rates into the reporting currency
type RateProviderInterface interface {
	GetConversionRate(ctx context.Context, from, to string) (projection.Conversion, error)
	Source() string
}

// ProjectionServiceInterface loads a user's snapshot and runs the projection engine
type ProjectionServiceInterface interface {
	Project(ctx context.Context, userID uuid.UUID, asOf time.Time) (*projection.Result, error)
}

// AuditServiceInterface reads and prunes the persisted audit trail
type AuditServiceInterface interface {
	ListActivity(userID uuid.UUID, page, pageSize int) ([]*models.AuditLog, int64, error)
	PurgeOlderThan(retention time.Duration) (int64, error)
}

// TransactionGeneratorInterface builds realistic demo transactions
type TransactionGeneratorInterface interface {
	GenerateRecurring(userID, accountID uuid.UUID, categories []models.Category, start time.Time) []*models.Transaction
	GenerateHistory(userID, accountID uuid.UUID, categories []models.Category, start, end time.Time) []*models.Transaction
}

// DemoDataServiceInterface seeds a user's ledger with generated activity
type DemoDataServiceInterface interface {
	Seed(userID uuid.UUID, months int, now time.Time) (int, error)
}

// MetricsRecorderInterface defines metrics recording operations
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// AuditLoggerInterface writes structured audit events to the application log
type AuditLoggerInterface interface {
	LogAuthEvent(ctx context.Context, event string, userID *uuid.UUID, email string, success bool)
	LogResourceChange(ctx context.Context, userID uuid.UUID, action, resource string, resourceID uuid.UUID)
	LogProjectionComputed(ctx context.Context, userID uuid.UUID, asOf time.Time, accounts, omitted int, duration time.Duration)
	LogRateLookupFailed(ctx context.Context, from, to string, err error)
	LogCircuitBreakerStateChange(ctx context.Context, service string, oldState, newState string)
}
