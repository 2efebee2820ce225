package dto

import (
	"fmt"
	"time"

	"cashflow-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format accepted and returned by the API.
const DateLayout = "2006-01-02"

// TransactionRequest is the payload for creating or replacing a transaction
type TransactionRequest struct {
	Type               string          `json:"type" validate:"required,transaction_type"`
	Amount             decimal.Decimal `json:"amount" validate:"gte=0"`
	CategoryID         uuid.UUID       `json:"category_id" validate:"required"`
	AccountID          uuid.UUID       `json:"account_id" validate:"required"`
	Description        string          `json:"description" validate:"max=500"`
	Date               string          `json:"date" validate:"required"`
	IsRecurring        bool            `json:"is_recurring"`
	RecurringFrequency string          `json:"recurring_frequency" validate:"recurring_frequency"`
}

// TransactionQuery holds the list filters read from the query string.
// Dates are calendar days and EndDate is inclusive.
type TransactionQuery struct {
	Type       string `query:"type" validate:"omitempty,transaction_type"`
	CategoryID string `query:"category_id" validate:"omitempty,uuid"`
	AccountID  string `query:"account_id" validate:"omitempty,uuid"`
	StartDate  string `query:"start_date"`
	EndDate    string `query:"end_date"`
}

// TransactionResponse is a transaction with its date as a calendar day
type TransactionResponse struct {
	ID                 uuid.UUID       `json:"id"`
	AccountID          uuid.UUID       `json:"account_id"`
	CategoryID         uuid.UUID       `json:"category_id"`
	Type               string          `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	Description        string          `json:"description"`
	Date               string          `json:"date"`
	IsRecurring        bool            `json:"is_recurring"`
	RecurringFrequency string          `json:"recurring_frequency,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                 t.ID,
		AccountID:          t.AccountID,
		CategoryID:         t.CategoryID,
		Type:               t.Type,
		Amount:             t.Amount.Round(2),
		Description:        t.Description,
		Date:               t.Date.Format(DateLayout),
		IsRecurring:        t.IsRecurring,
		RecurringFrequency: t.RecurringFrequency,
		CreatedAt:          t.CreatedAt,
	}
}

// NewTransactionResponses converts a list, keeping its order
func NewTransactionResponses(transactions []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, NewTransactionResponse(&transactions[i]))
	}
	return out
}

// CategoryRequest is the payload for creating or replacing a category
type CategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Type  string `json:"type" validate:"required,transaction_type"`
	Color string `json:"color" validate:"omitempty,hexcolor,len=7"`
	Icon  string `json:"icon" validate:"max=32"`
}

// BudgetRequest is the payload for creating or replacing a budget
type BudgetRequest struct {
	CategoryID uuid.UUID       `json:"category_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"gt=0"`
	Period     string          `json:"period" validate:"required,budget_period"`
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp and
// returns the calendar day at midnight UTC.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// PageMeta describes one page of a paginated listing
type PageMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}
