package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_Validate(t *testing.T) {
	validUserID := uuid.New()

	tests := []struct {
		name    string
		account Account
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid CAD account",
			account: Account{
				UserID:         validUserID,
				Name:           "Chequing",
				Currency:       "CAD",
				OpeningBalance: decimal.NewFromFloat(1000.50),
			},
			wantErr: false,
		},
		{
			name: "valid overdrawn GBP account",
			account: Account{
				UserID:         validUserID,
				Name:           "UK Current",
				Currency:       "GBP",
				OpeningBalance: decimal.NewFromFloat(-250),
			},
			wantErr: false,
		},
		{
			name: "missing user ID",
			account: Account{
				Name:     "Chequing",
				Currency: "CAD",
			},
			wantErr: true,
			errMsg:  "user ID is required",
		},
		{
			name: "blank name",
			account: Account{
				UserID:   validUserID,
				Name:     "   ",
				Currency: "CAD",
			},
			wantErr: true,
			errMsg:  "account name is required",
		},
		{
			name: "unsupported currency",
			account: Account{
				UserID:   validUserID,
				Name:     "Yen Savings",
				Currency: "JPY",
			},
			wantErr: true,
			errMsg:  "unsupported currency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAccount_BeforeCreate(t *testing.T) {
	account := Account{
		UserID:   uuid.New(),
		Name:     DefaultAccountName,
		Currency: "usd",
	}

	err := account.BeforeCreate(nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Equal(t, "USD", account.Currency)
	assert.NotZero(t, account.CreatedAt)
	assert.NotZero(t, account.UpdatedAt)
}

func TestAccount_BeforeCreate_DefaultsCurrency(t *testing.T) {
	account := Account{UserID: uuid.New(), Name: DefaultAccountName}

	require.NoError(t, account.BeforeCreate(nil))
	assert.Equal(t, DefaultAccountCurrency, account.Currency)
}

func TestAccount_ToProjection(t *testing.T) {
	account := Account{
		ID:             uuid.New(),
		Name:           "Travel",
		Currency:       "EUR",
		OpeningBalance: decimal.RequireFromString("12.34"),
		IsDefault:      true,
	}

	p := account.ToProjection()

	assert.Equal(t, account.ID, p.ID)
	assert.Equal(t, "Travel", p.Name)
	assert.Equal(t, "EUR", p.Currency)
	assert.True(t, p.OpeningBalance.Equal(account.OpeningBalance))
	assert.True(t, p.IsDefault)
}

func TestNewAccountBalance(t *testing.T) {
	account := &Account{
		ID:             uuid.New(),
		Name:           "Chequing",
		Currency:       "CAD",
		OpeningBalance: decimal.NewFromInt(100),
	}

	balance := NewAccountBalance(account, decimal.NewFromInt(50), decimal.RequireFromString("175.25"))

	assert.Equal(t, account.ID, balance.AccountID)
	assert.True(t, decimal.RequireFromString("-25.25").Equal(balance.CurrentBalance), "got %s", balance.CurrentBalance)
	assert.True(t, decimal.NewFromInt(50).Equal(balance.TotalIncome))
}
