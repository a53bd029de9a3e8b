package email

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQueue struct {
	mu   sync.Mutex
	msgs []*Email
	err  error
}

func (q *recordingQueue) Enqueue(ctx context.Context, msg *Email) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, msg)
	return q.err
}

func (q *recordingQueue) sent() []*Email {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*Email(nil), q.msgs...)
}

func newAlertLogger(q Enqueuer, admins ...string) (*slog.Logger, *bytes.Buffer) {
	var out bytes.Buffer
	next := slog.NewJSONHandler(&out, &slog.HandlerOptions{Level: slog.LevelInfo})
	h := NewErrorMailHandler(next, q, ErrorMailConfig{
		From:       "no-reply@example.com",
		To:         admins,
		Subject:    "Microblog Failure",
		SkipWorker: "mail_worker",
	})
	return slog.New(h), &out
}

func TestErrorMailHandler_MailsErrors(t *testing.T) {
	q := &recordingQueue{}
	log, out := newAlertLogger(q, "admin@example.com", "ops@example.com")

	log.With("request_id", "req-1").Error("Page failed", "path", "/index", "error", "no such table: post")

	msgs := q.sent()
	require.Len(t, msgs, 1)
	msg := msgs[0]
	assert.Equal(t, "Microblog Failure", msg.Subject)
	assert.Equal(t, "no-reply@example.com", msg.From)
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, msg.To)
	assert.Contains(t, msg.Body, "level=ERROR")
	assert.Contains(t, msg.Body, `msg="Page failed"`)
	assert.Contains(t, msg.Body, "request_id=req-1")
	assert.Contains(t, msg.Body, "path=/index")
	assert.Contains(t, msg.Body, `error="no such table: post"`)

	// основной вывод не меняется
	assert.Contains(t, out.String(), `"msg":"Page failed"`)
}

func TestErrorMailHandler_IgnoresLowerLevels(t *testing.T) {
	q := &recordingQueue{}
	log, out := newAlertLogger(q, "admin@example.com")

	log.Debug("debug")
	log.Info("User logged in", "username", "john")
	log.Warn("Service error", "error", "not found")

	assert.Empty(t, q.sent())
	assert.Contains(t, out.String(), "User logged in")
	assert.Contains(t, out.String(), "Service error")
	assert.NotContains(t, out.String(), `"msg":"debug"`)
}

func TestErrorMailHandler_SkipsMailWorker(t *testing.T) {
	q := &recordingQueue{}
	log, out := newAlertLogger(q, "admin@example.com")

	log.Error("Failed to store failed email", "worker", "mail_worker")
	log.With("worker", "mail_worker").Error("Email moved to dead letters")
	log.WithGroup("job").Error("Nested attribute does not match", "worker", "other")

	msgs := q.sent()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Body, "Nested attribute does not match")
	assert.Contains(t, msgs[0].Body, "job.worker=other")
	assert.Contains(t, out.String(), "Email moved to dead letters")
}

func TestErrorMailHandler_NoAdmins(t *testing.T) {
	q := &recordingQueue{}
	log, _ := newAlertLogger(q)

	log.Error("Page failed")
	assert.Empty(t, q.sent())
}

func TestErrorMailHandler_EnqueueErrorDoesNotFailLogging(t *testing.T) {
	q := &recordingQueue{err: errors.New("mail queue is closed")}
	log, out := newAlertLogger(q, "admin@example.com")

	log.Error("Page failed")
	assert.Len(t, q.sent(), 1)
	assert.Contains(t, out.String(), "Page failed")
}
