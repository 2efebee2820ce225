package services

import (
	"errors"
	"fmt"
	"log/slog"

	"cashflow-tracker/internal/dto"
	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/repositories"

	"github.com/google/uuid"
)

var ErrBudgetNotFound = errors.New("budget not found")

type budgetService struct {
	budgetRepo   repositories.BudgetRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	auditLogger  AuditLoggerInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewBudgetService creates a budget service
func NewBudgetService(
	budgetRepo repositories.BudgetRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) BudgetServiceInterface {
	return &budgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		auditLogger:  auditLogger,
		metrics:      metrics,
		logger:       logger,
	}
}

func (s *budgetService) ListBudgets(userID uuid.UUID) ([]models.Budget, error) {
	budgets, err := s.budgetRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}
	return budgets, nil
}

func (s *budgetService) CreateBudget(userID uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error) {
	if err := s.checkCategory(userID, req.CategoryID); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     req.Period,
	}

	if err := s.budgetRepo.Create(budget); err != nil {
		return nil, mapBudgetError(err, "create")
	}

	recordLedgerChange(s.auditLogger, s.metrics, userID, models.AuditActionCreate, models.AuditResourceBudget, budget.ID)
	return budget, nil
}

func (s *budgetService) UpdateBudget(userID, budgetID uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error) {
	budget, err := s.getOwned(userID, budgetID)
	if err != nil {
		return nil, err
	}

	if err := s.checkCategory(userID, req.CategoryID); err != nil {
		return nil, err
	}

	budget.CategoryID = req.CategoryID
	budget.Amount = req.Amount
	budget.Period = req.Period

	if err := s.budgetRepo.Update(budget); err != nil {
		return nil, mapBudgetError(err, "update")
	}

	recordLedgerChange(s.auditLogger, s.metrics, userID, models.AuditActionUpdate, models.AuditResourceBudget, budget.ID)
	return budget, nil
}

func (s *budgetService) DeleteBudget(userID, budgetID uuid.UUID) error {
	budget, err := s.getOwned(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.budgetRepo.Delete(budget.ID); err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return ErrBudgetNotFound
		}
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	recordLedgerChange(s.auditLogger, s.metrics, userID, models.AuditActionDelete, models.AuditResourceBudget, budget.ID)
	return nil
}

func (s *budgetService) getOwned(userID, budgetID uuid.UUID) (*models.Budget, error) {
	budget, err := s.budgetRepo.GetByIDForUser(budgetID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

func (s *budgetService) checkCategory(userID, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.GetByIDForUser(categoryID, userID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to get category: %w", err)
	}
	return nil
}

func mapBudgetError(err error, op string) error {
	if errors.Is(err, models.ErrInvalidBudgetAmount) || errors.Is(err, models.ErrInvalidBudgetPeriod) {
		return err
	}
	return fmt.Errorf("failed to %s budget: %w", op, err)
}
