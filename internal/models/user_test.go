package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid user",
			user:    User{Email: "test@example.com", Name: "Jordan Doe"},
			wantErr: false,
		},
		{
			name:    "invalid email",
			user:    User{Email: "invalid-email", Name: "Jordan Doe"},
			wantErr: true,
			errMsg:  "invalid email format",
		},
		{
			name:    "empty email",
			user:    User{Email: "", Name: "Jordan Doe"},
			wantErr: true,
			errMsg:  "email is required",
		},
		{
			name:    "blank name",
			user:    User{Email: "test@example.com", Name: "  "},
			wantErr: true,
			errMsg:  "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUser_BeforeCreate(t *testing.T) {
	user := User{Email: "  Someone@Example.COM ", Name: "Someone"}

	err := user.BeforeCreate(nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "someone@example.com", user.Email)
	assert.NotZero(t, user.CreatedAt)
}

func TestUser_UpdateLastLogin(t *testing.T) {
	user := User{}
	assert.Nil(t, user.LastLoginAt)

	user.UpdateLastLogin()

	require.NotNil(t, user.LastLoginAt)
	assert.False(t, user.LastLoginAt.IsZero())
}
