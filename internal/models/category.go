package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultCategoryColor = "#3B82F6"

var (
	ErrInvalidCategoryType  = errors.New("category type must be income or expense")
	ErrInvalidCategoryColor = errors.New("category color must be a hex color like #3B82F6")

	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// Category groups transactions for reporting and budgeting.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Type      string    `gorm:"type:varchar(10);not null" json:"type"`
	Color     string    `gorm:"type:varchar(7);not null;default:'#3B82F6'" json:"color"`
	Icon      string    `gorm:"type:varchar(32)" json:"icon"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Color == "" {
		c.Color = DefaultCategoryColor
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return c.Validate()
}

func (c *Category) Validate() error {
	if c.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("category name is required")
	}
	if !IsValidTransactionType(c.Type) {
		return ErrInvalidCategoryType
	}
	if c.Color != "" && !hexColorRegex.MatchString(c.Color) {
		return ErrInvalidCategoryColor
	}
	return nil
}

func (c *Category) TableName() string {
	return "categories"
}

// DefaultCategories returns the categories seeded for every new user.
func DefaultCategories(userID uuid.UUID) []Category {
	seed := []struct{ name, typ, color, icon string }{
		{"Salary", TransactionTypeIncome, "#10B981", "💵"},
		{"Freelance", TransactionTypeIncome, "#3B82F6", "💼"},
		{"Investment", TransactionTypeIncome, "#8B5CF6", "📈"},
		{"Food & Dining", TransactionTypeExpense, "#EF4444", "🍔"},
		{"Transportation", TransactionTypeExpense, "#F59E0B", "🚗"},
		{"Shopping", TransactionTypeExpense, "#EC4899", "🛍️"},
		{"Entertainment", TransactionTypeExpense, "#6366F1", "🎮"},
		{"Bills & Utilities", TransactionTypeExpense, "#EF4444", "💡"},
		{"Healthcare", TransactionTypeExpense, "#14B8A6", "🏥"},
		{"Other", TransactionTypeExpense, "#6B7280", "📦"},
	}

	categories := make([]Category, 0, len(seed))
	for _, s := range seed {
		categories = append(categories, Category{
			UserID: userID,
			Name:   s.name,
			Type:   s.typ,
			Color:  s.color,
			Icon:   s.icon,
		})
	}
	return categories
}
