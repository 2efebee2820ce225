package repositories

import (
	"errors"
	"fmt"

	"cashflow-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// GetByUserID lists a user's categories by name. An empty categoryType
// returns both kinds.
func (r *categoryRepository) GetByUserID(userID uuid.UUID, categoryType string) ([]models.Category, error) {
	var categories []models.Category

	query := r.db.Where("user_id = ?", userID)
	if categoryType != "" {
		query = query.Where("type = ?", categoryType)
	}

	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetByIDs loads the named categories that belong to userID.
func (r *categoryRepository) GetByIDs(userID uuid.UUID, ids []uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if len(ids) == 0 {
		return categories, nil
	}

	if err := r.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Update(category *models.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// CountUsage returns how many transactions and budgets reference the category
func (r *categoryRepository) CountUsage(categoryID uuid.UUID) (int64, error) {
	var transactions, budgets int64

	if err := r.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&transactions).Error; err != nil {
		return 0, fmt.Errorf("failed to count category transactions: %w", err)
	}
	if err := r.db.Model(&models.Budget{}).Where("category_id = ?", categoryID).Count(&budgets).Error; err != nil {
		return 0, fmt.Errorf("failed to count category budgets: %w", err)
	}

	return transactions + budgets, nil
}
