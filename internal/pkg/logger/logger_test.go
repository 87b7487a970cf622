package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out))
	return out
}

func TestLogger_ContextValuesAreAttached(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json", Attrs: []slog.Attr{slog.String("service", "medstock-api")}}, &buf)

	id := uuid.New()
	ctx := WithValue(context.Background(), ContextKeyRequestID, "req-123")
	ctx = WithValue(ctx, ContextKeyMedicine, id)

	l.InfoContext(ctx, "medicine created")

	line := decodeLine(t, &buf)
	assert.Equal(t, "medicine created", line["msg"])
	assert.Equal(t, "INFO", line["severity"])
	assert.Equal(t, "req-123", line["request_id"])
	assert.Equal(t, id.String(), line["medicine_id"])
	assert.Equal(t, "medstock-api", line["service"])
}

func TestLogger_JobAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json"}, &buf).With(slog.String("processor", "cleanup"))

	ctx := WithValue(context.Background(), ContextKeyJobID, "job-7")
	ctx = WithValue(ctx, ContextKeyTaskType, "medicine:reconcile")

	l.InfoContext(ctx, "reconciled")
	line := decodeLine(t, &buf)
	assert.Equal(t, "job-7", line["job_id"])
	assert.Equal(t, "medicine:reconcile", line["task_type"])
	assert.Equal(t, "cleanup", line["processor"])

	// without the context nothing is attached
	buf.Reset()
	l.Info("reconciled")
	line = decodeLine(t, &buf)
	assert.NotContains(t, line, "job_id")
}

func TestLogger_SanitizesSecrets(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Format: "json"}, &buf)

	l.Info("connecting with password=hunter2", "db_password", "hunter2", "host", "db.local")

	line := decodeLine(t, &buf)
	assert.NotContains(t, buf.String(), "hunter2")
	assert.Equal(t, "connecting with password=***REDACTED***", line["msg"])
	assert.Equal(t, "***REDACTED***", line["db_password"])
	assert.Equal(t, "db.local", line["host"])
}

func TestLogger_SanitizesAttachedAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json"}, &buf).With(
		slog.String("dsn", "postgres://medstock:s3cret@db:5432/medstock"),
		slog.Group("s3", slog.String("secret_key", "abc")),
	)

	l.Info("store ready", "cache_key", "analytics:2025-06-15:3")

	line := decodeLine(t, &buf)
	assert.NotContains(t, buf.String(), "s3cret")
	assert.NotContains(t, buf.String(), `"abc"`)
	assert.Equal(t, "postgres://medstock:***REDACTED***@db:5432/medstock", line["dsn"])
	assert.Equal(t, "analytics:2025-06-15:3", line["cache_key"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Format: "json"}, &buf)

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "text"}, &buf)

	l.InfoContext(WithValue(context.Background(), ContextKeyRequestID, "req-9"), "hello")
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "request_id=req-9")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").Level().String())
	assert.Equal(t, "WARN", parseLevel("WARNING").Level().String())
	assert.Equal(t, "INFO", parseLevel("nonsense").Level().String())
}
