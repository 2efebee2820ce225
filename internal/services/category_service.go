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
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category is referenced by transactions or budgets")
)

type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	auditLogger  AuditLoggerInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewCategoryService creates a category service
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &categoryService{
		categoryRepo: categoryRepo,
		auditLogger:  auditLogger,
		metrics:      metrics,
		logger:       logger,
	}
}

// ListCategories returns the user's categories. An empty categoryType lists
// both kinds.
func (s *categoryService) ListCategories(userID uuid.UUID, categoryType string) ([]models.Category, error) {
	if categoryType != "" && !models.IsValidTransactionType(categoryType) {
		return nil, models.ErrInvalidCategoryType
	}

	categories, err := s.categoryRepo.GetByUserID(userID, categoryType)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(userID uuid.UUID, req *dto.CategoryRequest) (*models.Category, error) {
	category := &models.Category{UserID: userID}
	applyCategoryRequest(category, req)

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	recordLedgerChange(s.auditLogger, s.metrics, userID, models.AuditActionCreate, models.AuditResourceCategory, category.ID)
	return category, nil
}

func (s *categoryService) UpdateCategory(userID, categoryID uuid.UUID, req *dto.CategoryRequest) (*models.Category, error) {
	category, err := s.getOwned(userID, categoryID)
	if err != nil {
		return nil, err
	}

	applyCategoryRequest(category, req)

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	recordLedgerChange(s.auditLogger, s.metrics, userID, models.AuditActionUpdate, models.AuditResourceCategory, category.ID)
	return category, nil
}

// DeleteCategory removes a category nothing references. Transactions and
// budgets keep their category, so a referenced one cannot go.
func (s *categoryService) DeleteCategory(userID, categoryID uuid.UUID) error {
	category, err := s.getOwned(userID, categoryID)
	if err != nil {
		return err
	}

	usage, err := s.categoryRepo.CountUsage(category.ID)
	if err != nil {
		return fmt.Errorf("failed to count category usage: %w", err)
	}
	if usage > 0 {
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(category.ID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	recordLedgerChange(s.auditLogger, s.metrics, userID, models.AuditActionDelete, models.AuditResourceCategory, category.ID)
	return nil
}

func (s *categoryService) getOwned(userID, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.GetByIDForUser(categoryID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func applyCategoryRequest(category *models.Category, req *dto.CategoryRequest) {
	category.Name = strings.TrimSpace(req.Name)
	category.Type = req.Type
	category.Color = req.Color
	if category.Color == "" {
		category.Color = models.DefaultCategoryColor
	}
	category.Icon = req.Icon
}
