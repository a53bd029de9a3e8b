package workers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"microblog/internal/email"
	"microblog/internal/logger"
	"microblog/internal/metrics"
	"microblog/internal/models"
	"microblog/internal/repositories"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"
)

// MailWorkerName - значение атрибута worker в логах очереди писем.
const MailWorkerName = "mail_worker"

var ErrQueueClosed = errors.New("mail queue is closed")

// MailQueueConfig - параметры очереди писем
type MailQueueConfig struct {
	Workers         int
	QueueSize       int
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (c MailQueueConfig) withDefaults() MailQueueConfig {
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 100
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = 500 * time.Millisecond
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = 30 * time.Second
	}
	return c
}

// MailQueue отправляет письма в фоне: запрос только ставит письмо в очередь.
// Каждая отправка повторяется с экспоненциальной задержкой; письмо, исчерпавшее
// попытки (или не поместившееся в очередь), сохраняется в failed_emails.
type MailQueue struct {
	provider    email.Provider
	db          *gorm.DB
	deadLetters repositories.FailedEmailRepository
	cfg         MailQueueConfig

	jobs    chan *email.Email
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	stopCtx context.Context
	stop    context.CancelFunc
}

func NewMailQueue(provider email.Provider, db *gorm.DB, deadLetters repositories.FailedEmailRepository, cfg MailQueueConfig) *MailQueue {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &MailQueue{
		provider:    provider,
		db:          db,
		deadLetters: deadLetters,
		cfg:         cfg,
		jobs:        make(chan *email.Email, cfg.QueueSize),
		stopCtx:     ctx,
		stop:        cancel,
	}
}

// Start запускает воркеры
func (q *MailQueue) Start() {
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.run(i)
	}
	logger.Info("Mail queue started", "workers", q.cfg.Workers, "queue_size", q.cfg.QueueSize)
}

// Enqueue никогда не блокирует вызывающего. Переполненная очередь
// не теряет письмо молча: оно сразу уходит в dead letters.
func (q *MailQueue) Enqueue(ctx context.Context, msg *email.Email) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- msg:
		metrics.EmailQueueDepth.Inc()
		logger.CtxDebug(ctx, "email queued", "subject", msg.Subject, "to", msg.To)
		return nil
	default:
		err := errors.New("mail queue is full")
		logger.CtxWarn(ctx, "mail queue is full, storing email as failed", "subject", msg.Subject)
		q.deadLetter(msg, 0, err)
		return nil
	}
}

// Shutdown перестает принимать письма и ждет, пока воркеры разберут очередь.
// Если ctx истекает раньше, текущие повторы прерываются.
func (q *MailQueue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("Mail queue stopped")
		return nil
	case <-ctx.Done():
		q.stop()
		<-done
		return ctx.Err()
	}
}

func (q *MailQueue) run(id int) {
	defer q.wg.Done()
	for msg := range q.jobs {
		metrics.EmailQueueDepth.Dec()
		q.deliver(msg, id)
	}
}

// Deliver синхронно отправляет письмо с повторами. Используется воркерами и CLI.
func (q *MailQueue) Deliver(ctx context.Context, msg *email.Email) (attempts int, err error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = q.cfg.InitialInterval
	policy.MaxInterval = q.cfg.MaxInterval
	policy.MaxElapsedTime = 0

	op := func() error {
		attempts++
		if err := q.provider.Send(ctx, msg); err != nil {
			logger.WorkerLog(MailWorkerName, "send_attempt", err, "attempt", attempts, "subject", msg.Subject)
			return err
		}
		return nil
	}

	err = backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, q.cfg.MaxRetries), ctx))
	return attempts, err
}

func (q *MailQueue) deliver(msg *email.Email, workerID int) {
	attempts, err := q.Deliver(q.stopCtx, msg)
	if err != nil {
		q.deadLetter(msg, attempts, err)
		return
	}
	metrics.EmailsSent.Inc()
	logger.WorkerLog(MailWorkerName, "send", nil, "worker_id", workerID, "subject", msg.Subject, "attempts", attempts)
}

func (q *MailQueue) deadLetter(msg *email.Email, attempts int, cause error) {
	metrics.EmailsFailed.Inc()
	logger.WorkerLog(MailWorkerName, "dead_letter", cause, "subject", msg.Subject, "attempts", attempts)

	recipients, err := json.Marshal(msg.To)
	if err != nil {
		logger.Error("failed to encode email recipients", "worker", MailWorkerName, "error", err)
		return
	}
	record := &models.FailedEmail{
		Recipients: recipients,
		Subject:    msg.Subject,
		TextBody:   msg.Body,
		HTMLBody:   msg.HTMLBody,
		Attempts:   attempts,
		LastError:  cause.Error(),
	}
	if err := q.deadLetters.Create(q.db, record); err != nil {
		logger.Error("failed to store failed email", "worker", MailWorkerName, "error", err, "subject", msg.Subject)
	}
}

// Retry повторно отправляет сохраненные письма; успешно отправленные удаляются.
// Возвращает число отправленных писем.
func (q *MailQueue) Retry(ctx context.Context, limit int) (int, error) {
	items, err := q.deadLetters.List(q.db, limit)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, item := range items {
		var to []string
		if err := json.Unmarshal(item.Recipients, &to); err != nil {
			logger.Warn("skipping failed email with broken recipients", "id", item.ID, "error", err)
			continue
		}
		msg := &email.Email{To: to, Subject: item.Subject, Body: item.TextBody, HTMLBody: item.HTMLBody}
		if _, err := q.Deliver(ctx, msg); err != nil {
			logger.WorkerLog(MailWorkerName, "retry", err, "id", item.ID)
			continue
		}
		if err := q.deadLetters.Delete(q.db, item.ID); err != nil {
			return sent, err
		}
		metrics.EmailsSent.Inc()
		sent++
	}
	return sent, nil
}
