package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cashflow-tracker/internal/dto"
	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// MaxFailedLogins is the number of failed logins for one email tolerated
	// within FailedLoginWindow before further attempts are refused.
	MaxFailedLogins   = 5
	FailedLoginWindow = 15 * time.Minute
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrTooManyLoginAttempts = errors.New("too many failed login attempts")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        repositories.UserRepositoryInterface
	auditRepo       repositories.AuditLogRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	auditLogger     AuditLoggerInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
	now             func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:        userRepo,
		auditRepo:       auditRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		auditLogger:     auditLogger,
		metrics:         metrics,
		logger:          logger,
		now:             time.Now,
	}
}

// Register creates a user together with the default categories and the
// default account, and signs them in.
func (s *AuthService) Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.TokenResponse, error) {
	email := normalizeEmail(req.Email)

	existingUser, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		s.recordAuthEvent("register_failed", nil, email, false)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(req.Name),
	}
	account := &models.Account{
		Name:           models.DefaultAccountName,
		Currency:       models.DefaultAccountCurrency,
		OpeningBalance: decimal.Zero,
		IsDefault:      true,
	}

	if err := s.userRepo.CreateWithDefaults(user, models.DefaultCategories(uuid.Nil), account); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.writeAudit(&models.AuditLog{
		UserID:     &user.ID,
		Action:     models.AuditActionRegister,
		Resource:   models.AuditResourceUser,
		ResourceID: user.ID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	})
	s.recordAuthEvent("register", &user.ID, email, true)

	return s.issueToken(user)
}

// Login authenticates a user. Unknown emails and wrong passwords fail
// with the same error.
func (s *AuthService) Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error) {
	email := normalizeEmail(req.Email)

	failures, err := s.auditRepo.GetFailedLoginAttempts(email, s.now().Add(-FailedLoginWindow))
	if err != nil {
		s.logger.Warn("failed to count failed logins", "error", err, "email", email)
	} else if failures >= MaxFailedLogins {
		s.recordAuthEvent("login_throttled", nil, email, false)
		return nil, ErrTooManyLoginAttempts
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.recordFailedLogin(email, ipAddress, userAgent, "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		s.recordFailedLogin(email, ipAddress, userAgent, "invalid_password")
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(user.ID, s.now()); err != nil {
		s.logger.Warn("failed to update last login",
			"error", err,
			"user_id", user.ID)
	}

	s.writeAudit(&models.AuditLog{
		UserID:     &user.ID,
		Action:     models.AuditActionLogin,
		Resource:   models.AuditResourceUser,
		ResourceID: user.ID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	})
	s.recordAuthEvent("login", &user.ID, email, true)

	return s.issueToken(user)
}

// Me returns the authenticated user
func (s *AuthService) Me(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issueToken(user *models.User) (*dto.TokenResponse, error) {
	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   TokenTypeBearer,
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	}, nil
}

// recordFailedLogin stores the attempt keyed by email so later logins can
// be throttled.
func (s *AuthService) recordFailedLogin(email, ipAddress, userAgent, reason string) {
	log := &models.AuditLog{
		Action:     models.AuditActionFailedLogin,
		Resource:   models.AuditResourceUser,
		ResourceID: email,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	}
	log.SetMetadata("reason", reason)

	s.writeAudit(log)
	s.recordAuthEvent("login_failed", nil, email, false)
}

func (s *AuthService) writeAudit(log *models.AuditLog) {
	if err := s.auditRepo.Create(log); err != nil {
		// Non-critical: audit persistence failure shouldn't block authentication
		s.logger.Error("failed to write audit log",
			"error", err,
			"action", log.Action)
	}
}

func (s *AuthService) recordAuthEvent(event string, userID *uuid.UUID, email string, success bool) {
	s.auditLogger.LogAuthEvent(context.Background(), "auth."+event, userID, email, success)
	s.metrics.IncrementCounter(MetricAuthEvent, map[string]string{"event_type": event})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
