package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cashflow-tracker/internal/dto"
	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidDate         = errors.New("invalid transaction date")
)

type transactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	accountRepo     repositories.AccountRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	auditLogger     AuditLoggerInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewTransactionService creates a transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		auditLogger:     auditLogger,
		metrics:         metrics,
		logger:          logger,
	}
}

// ListTransactions returns the transactions matching filters, newest first
func (s *transactionService) ListTransactions(filters models.TransactionFilters) ([]models.Transaction, error) {
	if filters.Type != "" && !models.IsValidTransactionType(filters.Type) {
		return nil, models.ErrInvalidTransactionType
	}

	transactions, err := s.transactionRepo.GetWithFilters(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// CreateTransaction records a transaction against one of the user's accounts
func (s *transactionService) CreateTransaction(userID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error) {
	transaction := &models.Transaction{UserID: userID}
	if err := s.apply(userID, transaction, req); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Create(transaction); err != nil {
		return nil, mapTransactionError(err, "create")
	}

	recordLedgerChange(s.auditLogger, s.metrics, userID, models.AuditActionCreate, models.AuditResourceTransaction, transaction.ID)
	return transaction, nil
}

// UpdateTransaction replaces every editable field of a transaction
func (s *transactionService) UpdateTransaction(userID, transactionID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByIDForUser(transactionID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if err := s.apply(userID, transaction, req); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Update(transaction); err != nil {
		return nil, mapTransactionError(err, "update")
	}

	recordLedgerChange(s.auditLogger, s.metrics, userID, models.AuditActionUpdate, models.AuditResourceTransaction, transaction.ID)
	return transaction, nil
}

func (s *transactionService) DeleteTransaction(userID, transactionID uuid.UUID) error {
	transaction, err := s.transactionRepo.GetByIDForUser(transactionID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("failed to get transaction: %w", err)
	}

	if err := s.transactionRepo.Delete(transaction.ID); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	recordLedgerChange(s.auditLogger, s.metrics, userID, models.AuditActionDelete, models.AuditResourceTransaction, transaction.ID)
	return nil
}

// apply copies req onto transaction after checking that the referenced
// account and category belong to the user.
func (s *transactionService) apply(userID uuid.UUID, transaction *models.Transaction, req *dto.TransactionRequest) error {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	if _, err := s.accountRepo.GetByIDForUser(req.AccountID, userID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to get account: %w", err)
	}

	if _, err := s.categoryRepo.GetByIDForUser(req.CategoryID, userID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	transaction.AccountID = req.AccountID
	transaction.CategoryID = req.CategoryID
	transaction.Type = req.Type
	transaction.Amount = req.Amount
	transaction.Description = strings.TrimSpace(req.Description)
	transaction.Date = date
	transaction.IsRecurring = req.IsRecurring
	transaction.RecurringFrequency = req.RecurringFrequency
	if !transaction.IsRecurring {
		transaction.RecurringFrequency = ""
	} else if transaction.RecurringFrequency == "" {
		transaction.RecurringFrequency = models.FrequencyMonthly
	}

	return nil
}

func mapTransactionError(err error, op string) error {
	switch {
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidTransactionType),
		errors.Is(err, models.ErrInvalidFrequency):
		return err
	default:
		return fmt.Errorf("failed to %s transaction: %w", op, err)
	}
}
