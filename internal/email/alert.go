package email

import (
	"bytes"
	"context"
	"log/slog"
)

// Enqueuer - асинхронная отправка (workers.MailQueue).
type Enqueuer interface {
	Enqueue(ctx context.Context, msg *Email) error
}

// ErrorMailConfig - кому и от кого уходят письма об ошибках
type ErrorMailConfig struct {
	From    string
	To      []string
	Subject string
	// SkipWorker - записи с атрибутом worker=SkipWorker не отправляются,
	// иначе ошибка доставки почты порождала бы новое письмо.
	SkipWorker string
}

// ErrorMailHandler пропускает записи в next и дублирует записи уровня ERROR
// письмом администраторам.
type ErrorMailHandler struct {
	next   slog.Handler
	sender Enqueuer
	cfg    ErrorMailConfig

	// With/WithGroup в порядке вызова, чтобы тело письма совпадало с логом
	ops     []func(slog.Handler) slog.Handler
	skipped bool
}

func NewErrorMailHandler(next slog.Handler, sender Enqueuer, cfg ErrorMailConfig) *ErrorMailHandler {
	return &ErrorMailHandler{next: next, sender: sender, cfg: cfg}
}

func (h *ErrorMailHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= slog.LevelError || h.next.Enabled(ctx, level)
}

func (h *ErrorMailHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if h.next.Enabled(ctx, r.Level) {
		err = h.next.Handle(ctx, r)
	}

	if r.Level < slog.LevelError || len(h.cfg.To) == 0 || h.skipped || h.fromSkippedWorker(r) {
		return err
	}

	var body bytes.Buffer
	var text slog.Handler = slog.NewTextHandler(&body, &slog.HandlerOptions{Level: slog.LevelError})
	for _, op := range h.ops {
		text = op(text)
	}
	if fmtErr := text.Handle(ctx, r); fmtErr != nil {
		return err
	}

	// ошибка постановки в очередь не логируется: это снова вызвало бы Handle
	_ = h.sender.Enqueue(ctx, &Email{
		From:    h.cfg.From,
		To:      h.cfg.To,
		Subject: h.cfg.Subject,
		Body:    body.String(),
	})
	return err
}

func (h *ErrorMailHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := h.clone()
	cp.next = h.next.WithAttrs(attrs)
	cp.ops = append(cp.ops, func(x slog.Handler) slog.Handler { return x.WithAttrs(attrs) })
	for _, a := range attrs {
		if h.isSkipAttr(a) {
			cp.skipped = true
		}
	}
	return cp
}

func (h *ErrorMailHandler) WithGroup(name string) slog.Handler {
	cp := h.clone()
	cp.next = h.next.WithGroup(name)
	cp.ops = append(cp.ops, func(x slog.Handler) slog.Handler { return x.WithGroup(name) })
	return cp
}

func (h *ErrorMailHandler) clone() *ErrorMailHandler {
	cp := *h
	cp.ops = append([]func(slog.Handler) slog.Handler(nil), h.ops...)
	return &cp
}

func (h *ErrorMailHandler) fromSkippedWorker(r slog.Record) bool {
	skip := false
	r.Attrs(func(a slog.Attr) bool {
		if h.isSkipAttr(a) {
			skip = true
			return false
		}
		return true
	})
	return skip
}

func (h *ErrorMailHandler) isSkipAttr(a slog.Attr) bool {
	return h.cfg.SkipWorker != "" && a.Key == "worker" && a.Value.String() == h.cfg.SkipWorker
}
