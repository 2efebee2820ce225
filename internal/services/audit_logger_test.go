package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturingAuditLogger() (AuditLoggerInterface, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewAuditLogger(logger), buf
}

func decodeLastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestAuditLogger_LogAuthEvent(t *testing.T) {
	al, buf := newCapturingAuditLogger()
	ctx := WithCorrelationID(context.Background(), "trace-123")
	userID := uuid.New()

	al.LogAuthEvent(ctx, "auth.login", &userID, "user@example.com", true)
	entry := decodeLastEntry(t, buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "auth.login", entry["event_type"])
	assert.Equal(t, userID.String(), entry["user_id"])
	assert.Equal(t, "trace-123", entry["correlation_id"])

	al.LogAuthEvent(context.Background(), "auth.login", nil, "user@example.com", false)
	entry = decodeLastEntry(t, buf)
	assert.Equal(t, "WARN", entry["level"])
	assert.NotContains(t, entry, "user_id")
	assert.Equal(t, "", entry["correlation_id"])
}

func TestAuditLogger_LogResourceChange(t *testing.T) {
	al, buf := newCapturingAuditLogger()
	userID, accountID := uuid.New(), uuid.New()

	al.LogResourceChange(context.Background(), userID, "create", "account", accountID)

	entry := decodeLastEntry(t, buf)
	assert.Equal(t, "account.create", entry["event_type"])
	assert.Equal(t, accountID.String(), entry["resource_id"])
}

func TestAuditLogger_LogProjectionComputed(t *testing.T) {
	al, buf := newCapturingAuditLogger()

	asOf := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	al.LogProjectionComputed(context.Background(), uuid.New(), asOf, 3, 1, 42*time.Millisecond)

	entry := decodeLastEntry(t, buf)
	assert.Equal(t, "projection.compute", entry["event_type"])
	assert.Equal(t, "2026-01-20", entry["as_of"])
	assert.Equal(t, float64(3), entry["accounts"])
	assert.Equal(t, float64(1), entry["omitted_accounts"])
	assert.Equal(t, float64(42), entry["duration_ms"])
}

func TestAuditLogger_LogRateLookupFailed(t *testing.T) {
	al, buf := newCapturingAuditLogger()

	al.LogRateLookupFailed(context.Background(), "USD", "CAD", errors.New("timeout"))

	entry := decodeLastEntry(t, buf)
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "timeout", entry["error"])
}

func TestGetCorrelationID(t *testing.T) {
	assert.Equal(t, "abc", getCorrelationID(WithCorrelationID(context.Background(), "abc")))
}
