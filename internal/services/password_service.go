package services

import (
	"errors"
	"fmt"

	"cashflow-tracker/internal/config"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultBCryptCost        = 12
	DefaultMinPasswordLength = 6
	MaxPasswordLength        = 72 // Bcrypt algorithm limitation
)

var (
	ErrPasswordEmpty    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordTooLong  = fmt.Errorf("password must not exceed %d characters", MaxPasswordLength)
)

// PasswordService handles password hashing and validation
type PasswordService struct {
	cost      int
	minLength int
}

// NewPasswordService creates a password service from the security settings.
// Zero values fall back to the defaults.
func NewPasswordService(cfg *config.SecurityConfig) PasswordServiceInterface {
	ps := &PasswordService{
		cost:      DefaultBCryptCost,
		minLength: DefaultMinPasswordLength,
	}
	if cfg != nil {
		if cfg.BCryptCost >= bcrypt.MinCost && cfg.BCryptCost <= bcrypt.MaxCost {
			ps.cost = cfg.BCryptCost
		}
		if cfg.PasswordMinLength > 0 {
			ps.minLength = cfg.PasswordMinLength
		}
	}
	return ps
}

// ValidatePassword checks the length limits of a password
func (ps *PasswordService) ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordEmpty
	}

	if len(password) < ps.minLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooShort, ps.minLength)
	}

	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}

	return nil
}

// HashPassword validates and hashes a password using bcrypt
func (ps *PasswordService) HashPassword(password string) (string, error) {
	if err := ps.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("password validation failed: %w", err)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), ps.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// ComparePassword reports whether password matches hash
func (ps *PasswordService) ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
