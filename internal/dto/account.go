package dto

import (
	"time"

	"cashflow-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account Request DTOs

// AccountRequest is the payload for creating or replacing an account
type AccountRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=100"`
	Currency       string          `json:"currency" validate:"required,currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	IsDefault      bool            `json:"is_default"`
}

// Account Response DTOs

// AccountResponse represents a single account together with its current balance
type AccountResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	IsDefault      bool            `json:"is_default"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewAccountResponse builds the response from an account and its balance
func NewAccountResponse(account *models.Account, balance decimal.Decimal) AccountResponse {
	return AccountResponse{
		ID:             account.ID,
		Name:           account.Name,
		Currency:       account.Currency,
		OpeningBalance: account.OpeningBalance.Round(2),
		CurrentBalance: balance.Round(2),
		IsDefault:      account.IsDefault,
		CreatedAt:      account.CreatedAt,
	}
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}
