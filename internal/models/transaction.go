package models

import (
	"errors"
	"time"

	"cashflow-tracker/internal/projection"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = string(projection.TypeIncome)
	TransactionTypeExpense = string(projection.TypeExpense)

	FrequencyMonthly      = string(projection.FrequencyMonthly)
	FrequencyTwiceMonthly = string(projection.FrequencyTwiceMonthly)
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidFrequency       = errors.New("invalid recurring frequency")
	ErrInvalidAmount          = errors.New("transaction amount cannot be negative")
)

// Transaction is a recorded income or expense. When IsRecurring is set it
// also acts as the template for projected future occurrences.
type Transaction struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Type               string          `gorm:"type:varchar(10);not null" json:"type"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description        string          `gorm:"type:text" json:"description"`
	Date               time.Time       `gorm:"not null;index" json:"date"`
	IsRecurring        bool            `gorm:"not null;default:false" json:"is_recurring"`
	RecurringFrequency string          `gorm:"type:varchar(20)" json:"recurring_frequency,omitempty"`
	CreatedAt          time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null" json:"updated_at"`

	Account  Account  `gorm:"foreignKey:AccountID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	t.normalizeRecurrence()

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	t.normalizeRecurrence()
	return t.Validate()
}

// normalizeRecurrence clears the frequency of one-off transactions and
// defaults recurring ones to monthly.
func (t *Transaction) normalizeRecurrence() {
	if !t.IsRecurring {
		t.RecurringFrequency = ""
		return
	}
	if t.RecurringFrequency == "" {
		t.RecurringFrequency = FrequencyMonthly
	}
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if t.CategoryID == uuid.Nil {
		return errors.New("category ID is required")
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	if t.Date.IsZero() {
		return errors.New("transaction date is required")
	}

	if t.RecurringFrequency != "" && !IsValidFrequency(t.RecurringFrequency) {
		return ErrInvalidFrequency
	}

	return nil
}

// IsIncome returns true for income transactions
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// SignedAmount returns the amount as a balance delta.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.IsIncome() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// ToProjection returns the engine's view of the transaction.
func (t *Transaction) ToProjection() projection.Transaction {
	return projection.Transaction{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Type:        projection.TransactionType(t.Type),
		Amount:      t.Amount,
		Date:        t.Date,
		IsRecurring: t.IsRecurring,
		Frequency:   projection.Frequency(t.RecurringFrequency),
	}
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// IsValidFrequency checks if the recurring frequency is valid
func IsValidFrequency(frequency string) bool {
	switch frequency {
	case FrequencyMonthly, FrequencyTwiceMonthly:
		return true
	default:
		return false
	}
}
