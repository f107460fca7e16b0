package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextHandlerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Format: "text", Output: &buf})
	ctx := context.Background()

	log.Debug(ctx, "dbg")
	log.Info(ctx, "inf")
	log.Warn(ctx, "wrn", "tab", "users")
	log.Error(ctx, "err", "status", 500)

	out := buf.String()
	assert.NotContains(t, out, "msg=dbg")
	assert.NotContains(t, out, "msg=inf")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "tab=users")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "status=500")
}

func TestNew_JSONHandlerWithAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Format: "JSON", Output: &buf}).With("component", "client")

	log.Debug(context.Background(), "http request", "method", "GET", "path", "/users")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "http request", rec["msg"])
	assert.Equal(t, "client", rec["component"])
	assert.Equal(t, "/users", rec["path"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestDiscard_DoesNotPanic(t *testing.T) {
	log := Discard()
	ctx := context.TODO()
	log.Debug(ctx, "x")
	log.Info(ctx, "x")
	log.Warn(ctx, "x")
	log.Error(ctx, "x")
	log.With("k", "v").Info(ctx, "x")
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "", MaskPhone(""))
	assert.Equal(t, "***", MaskPhone("1234"))
	assert.Equal(t, "******7890", MaskPhone("1234567890"))
	assert.Equal(t, "*2345", MaskPhone("12345"))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	stored := New(Options{Level: "info", Output: &buf})
	fallback := Discard()

	ctx := WithContext(context.Background(), stored)
	require.Same(t, stored, FromContext(ctx, fallback))
	require.Same(t, fallback, FromContext(context.Background(), fallback))
	require.NotNil(t, FromContext(context.Background(), nil))
}
