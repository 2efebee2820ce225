package models

import (
	"errors"
	"strings"
	"time"

	"cashflow-tracker/internal/projection"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultAccountName     = "Main Account"
	DefaultAccountCurrency = projection.CurrencyCAD
)

var (
	ErrInvalidCurrency    = errors.New("unsupported currency")
	ErrAccountNameMissing = errors.New("account name is required")
)

// Account is a user's bank account. Its balance is never stored; it is
// derived from OpeningBalance and the account's transactions.
type Account struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string          `gorm:"type:varchar(100);not null" json:"name"`
	Currency       string          `gorm:"type:varchar(3);not null;default:'CAD'" json:"currency"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"opening_balance"`
	IsDefault      bool            `gorm:"not null;default:false" json:"is_default"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`

	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	if a.Currency == "" {
		a.Currency = DefaultAccountCurrency
	}
	a.Currency = strings.ToUpper(a.Currency)

	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields. Negative opening balances are
// allowed (overdrawn or credit accounts).
func (a *Account) Validate() error {
	if a.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if strings.TrimSpace(a.Name) == "" {
		return ErrAccountNameMissing
	}

	if !projection.IsSupportedCurrency(a.Currency) {
		return ErrInvalidCurrency
	}

	return nil
}

// ToProjection returns the engine's view of the account.
func (a *Account) ToProjection() projection.Account {
	return projection.Account{
		ID:             a.ID,
		Name:           a.Name,
		Currency:       a.Currency,
		OpeningBalance: a.OpeningBalance,
		IsDefault:      a.IsDefault,
	}
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}

// AccountBalance is the all-time balance breakdown of an account.
type AccountBalance struct {
	AccountID      uuid.UUID       `json:"account_id"`
	AccountName    string          `json:"account_name"`
	Currency       string          `json:"currency"`
	IsDefault      bool            `json:"is_default"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalExpense   decimal.Decimal `json:"total_expense"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// NewAccountBalance derives the balance from the account's income and
// expense totals.
func NewAccountBalance(a *Account, income, expense decimal.Decimal) *AccountBalance {
	return &AccountBalance{
		AccountID:      a.ID,
		AccountName:    a.Name,
		Currency:       a.Currency,
		IsDefault:      a.IsDefault,
		OpeningBalance: a.OpeningBalance,
		TotalIncome:    income,
		TotalExpense:   expense,
		CurrentBalance: a.OpeningBalance.Add(income).Sub(expense),
	}
}
