package email

import (
	"context"

	"microblog/internal/logger"
)

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет сообщение; ошибка означает, что письмо не принято сервером
	Send(ctx context.Context, email *Email) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}

// LogProvider не отправляет письма, а пишет их в лог.
// Используется, когда SMTP сервер не настроен (локальная разработка).
type LogProvider struct{}

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxInfo(ctx, "email (not sent, smtp disabled)",
		"to", email.To,
		"subject", email.Subject,
		"body", email.Body,
	)
	return nil
}

func (p *LogProvider) Validate() error { return nil }
