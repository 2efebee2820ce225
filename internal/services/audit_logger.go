package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type contextKey string

// CorrelationIDKey carries the request trace ID through service calls
const CorrelationIDKey contextKey = "correlation_id"

// WithCorrelationID returns a copy of ctx that carries id
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) AuditLoggerInterface {
	return &AuditLogger{
		logger: logger,
	}
}

func (al *AuditLogger) LogAuthEvent(ctx context.Context, event string, userID *uuid.UUID, email string, success bool) {
	attrs := []slog.Attr{
		slog.String("event_type", event),
		slog.String("email", email),
		slog.Bool("success", success),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	}
	if userID != nil {
		attrs = append(attrs, slog.String("user_id", userID.String()))
	}

	level := slog.LevelInfo
	if !success {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(ctx, level, "authentication event", attrs...)
}

func (al *AuditLogger) LogResourceChange(ctx context.Context, userID uuid.UUID, action, resource string, resourceID uuid.UUID) {
	al.logger.InfoContext(ctx, "resource change",
		slog.String("event_type", resource+"."+action),
		slog.String("user_id", userID.String()),
		slog.String("resource", resource),
		slog.String("resource_id", resourceID.String()),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogProjectionComputed(ctx context.Context, userID uuid.UUID, asOf time.Time, accounts, omitted int, duration time.Duration) {
	al.logger.InfoContext(ctx, "projection computed",
		slog.String("event_type", "projection.compute"),
		slog.String("user_id", userID.String()),
		slog.String("as_of", asOf.Format("2006-01-02")),
		slog.Int("accounts", accounts),
		slog.Int("omitted_accounts", omitted),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogRateLookupFailed(ctx context.Context, from, to string, err error) {
	al.logger.WarnContext(ctx, "conversion rate lookup failed",
		slog.String("event_type", "rate.lookup_failed"),
		slog.String("from", from),
		slog.String("to", to),
		slog.String("error", err.Error()),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogCircuitBreakerStateChange(ctx context.Context, service string, oldState, newState string) {
	al.logger.WarnContext(ctx, "circuit breaker state change",
		slog.String("event_type", "circuit_breaker_state_change"),
		slog.String("service", service),
		slog.String("old_state", oldState),
		slog.String("new_state", newState),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func getCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}

	return ""
}
