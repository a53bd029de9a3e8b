package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_AddsRequestAndUserID(t *testing.T) {
	var buf bytes.Buffer
	prev := log
	log = New("production", &buf)
	defer func() { log = prev }()

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-1")
	CtxInfo(ctx, "hello", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, "v", entry["k"])
}

func TestFromContext_EmptyContext(t *testing.T) {
	var buf bytes.Buffer
	prev := log
	log = New("production", &buf)
	defer func() { log = prev }()

	CtxWarn(context.Background(), "no ids")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "request_id")
	assert.NotContains(t, entry, "user_id")
}

type countingHandler struct {
	slog.Handler
	errors *int
}

func (h countingHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		*h.errors++
	}
	return h.Handler.Handle(ctx, r)
}

func TestWrap_RestoresPreviousLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log
	log = New("production", &buf)
	t.Cleanup(func() { log = prev })

	base := log
	errors := 0
	restore := Wrap(func(next slog.Handler) slog.Handler {
		return countingHandler{Handler: next, errors: &errors}
	})

	Error("Failed to load feed")
	Info("User logged in")
	assert.Equal(t, 1, errors)
	assert.Contains(t, buf.String(), "Failed to load feed")
	assert.Contains(t, buf.String(), "User logged in")

	restore()
	assert.Same(t, base, GetLogger())
	Error("Page failed")
	assert.Equal(t, 1, errors)
}
