package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/repositories"

	"github.com/google/uuid"
)

const (
	DefaultActivityPageSize = 20
	MaxActivityPageSize     = 100

	// MinAuditRetention keeps at least the failed-login window around so
	// purging never resets login throttling.
	MinAuditRetention = 24 * time.Hour
)

var (
	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrInvalidRetention = errors.New("retention must be at least 24h")
)

// AuditService reads and prunes the persisted audit trail
type AuditService struct {
	repo   repositories.AuditLogRepositoryInterface
	logger *slog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(repo repositories.AuditLogRepositoryInterface, logger *slog.Logger) AuditServiceInterface {
	return &AuditService{
		repo:   repo,
		logger: logger,
	}
}

// ListActivity returns one page of the user's audit entries, newest first.
// page starts at 1; out of range values fall back to the defaults.
func (s *AuditService) ListActivity(userID uuid.UUID, page, pageSize int) ([]*models.AuditLog, int64, error) {
	if userID == uuid.Nil {
		return nil, 0, ErrInvalidUserID
	}

	page, pageSize = NormalizeActivityPage(page, pageSize)

	logs, total, err := s.repo.GetByUserID(userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get activity: %w", err)
	}
	return logs, total, nil
}

// NormalizeActivityPage applies the activity paging defaults and limits
func NormalizeActivityPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultActivityPageSize
	}
	if pageSize > MaxActivityPageSize {
		pageSize = MaxActivityPageSize
	}
	return page, pageSize
}

// PurgeOlderThan deletes entries older than retention and reports how many
// were removed.
func (s *AuditService) PurgeOlderThan(retention time.Duration) (int64, error) {
	if retention < MinAuditRetention {
		return 0, ErrInvalidRetention
	}

	deleted, err := s.repo.DeleteOlderThan(retention)
	if err != nil {
		return 0, fmt.Errorf("failed to purge audit logs: %w", err)
	}

	s.logger.Info("purged audit logs",
		"deleted", deleted,
		"retention", retention.String())
	return deleted, nil
}
