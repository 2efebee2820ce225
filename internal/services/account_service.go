package services

import (
	"context"
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
	ErrUserNotFound           = errors.New("user not found")
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountHasTransactions = errors.New("account has transactions")
	ErrInvalidCurrency        = errors.New("unsupported currency")
)

// accountService implements AccountServiceInterface interface
type accountService struct {
	accountRepo repositories.AccountRepositoryInterface
	auditLogger AuditLoggerInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewAccountService creates an account service
func NewAccountService(
	accountRepo repositories.AccountRepositoryInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AccountServiceInterface {
	return &accountService{
		accountRepo: accountRepo,
		auditLogger: auditLogger,
		metrics:     metrics,
		logger:      logger,
	}
}

// ListAccounts returns the user's accounts, oldest first, with their
// current balances.
func (s *accountService) ListAccounts(userID uuid.UUID) ([]dto.AccountResponse, error) {
	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	totals, err := s.accountRepo.GetTotalsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account totals: %w", err)
	}

	out := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		t := totals[accounts[i].ID]
		balance := models.NewAccountBalance(&accounts[i], t.Income, t.Expense)
		out = append(out, dto.NewAccountResponse(&accounts[i], balance.CurrentBalance))
	}
	return out, nil
}

// CreateAccount creates a new account for a user
func (s *accountService) CreateAccount(userID uuid.UUID, req *dto.AccountRequest) (*models.Account, error) {
	account := &models.Account{
		UserID:         userID,
		Name:           strings.TrimSpace(req.Name),
		Currency:       strings.ToUpper(req.Currency),
		OpeningBalance: req.OpeningBalance,
		IsDefault:      req.IsDefault,
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, mapAccountError(err, "create")
	}

	recordLedgerChange(s.auditLogger, s.metrics, userID, models.AuditActionCreate, models.AuditResourceAccount, account.ID)
	return account, nil
}

// UpdateAccount replaces the editable fields of an account
func (s *accountService) UpdateAccount(userID, accountID uuid.UUID, req *dto.AccountRequest) (*models.Account, error) {
	account, err := s.getOwned(userID, accountID)
	if err != nil {
		return nil, err
	}

	account.Name = strings.TrimSpace(req.Name)
	account.Currency = strings.ToUpper(req.Currency)
	account.OpeningBalance = req.OpeningBalance
	account.IsDefault = req.IsDefault

	if err := s.accountRepo.Update(account); err != nil {
		return nil, mapAccountError(err, "update")
	}

	recordLedgerChange(s.auditLogger, s.metrics, userID, models.AuditActionUpdate, models.AuditResourceAccount, account.ID)
	return account, nil
}

// DeleteAccount removes an account that no transaction references
func (s *accountService) DeleteAccount(userID, accountID uuid.UUID) error {
	account, err := s.getOwned(userID, accountID)
	if err != nil {
		return err
	}

	count, err := s.accountRepo.CountTransactions(account.ID)
	if err != nil {
		return fmt.Errorf("failed to count account transactions: %w", err)
	}
	if count > 0 {
		return ErrAccountHasTransactions
	}

	if err := s.accountRepo.Delete(account.ID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	recordLedgerChange(s.auditLogger, s.metrics, userID, models.AuditActionDelete, models.AuditResourceAccount, account.ID)
	return nil
}

// GetBalance returns the all-time balance breakdown of one account
func (s *accountService) GetBalance(userID, accountID uuid.UUID) (*models.AccountBalance, error) {
	account, err := s.getOwned(userID, accountID)
	if err != nil {
		return nil, err
	}

	income, expense, err := s.accountRepo.GetTotals(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account totals: %w", err)
	}

	return models.NewAccountBalance(account, income, expense), nil
}

// GetBalances returns the balance breakdown of every account of the user
func (s *accountService) GetBalances(userID uuid.UUID) ([]*models.AccountBalance, error) {
	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	totals, err := s.accountRepo.GetTotalsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account totals: %w", err)
	}

	balances := make([]*models.AccountBalance, 0, len(accounts))
	for i := range accounts {
		t := totals[accounts[i].ID]
		balances = append(balances, models.NewAccountBalance(&accounts[i], t.Income, t.Expense))
	}
	return balances, nil
}

func (s *accountService) getOwned(userID, accountID uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.GetByIDForUser(accountID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func mapAccountError(err error, op string) error {
	if errors.Is(err, models.ErrInvalidCurrency) {
		return ErrInvalidCurrency
	}
	return fmt.Errorf("failed to %s account: %w", op, err)
}

// recordLedgerChange emits the audit event and metric for a write to one of
// the user's ledger resources.
func recordLedgerChange(auditLogger AuditLoggerInterface, metrics MetricsRecorderInterface, userID uuid.UUID, action, resource string, id uuid.UUID) {
	auditLogger.LogResourceChange(context.Background(), userID, action, resource, id)
	metrics.IncrementCounter(MetricLedgerChange, map[string]string{"resource": resource, "action": action})
}
