package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var log *slog.Logger

// Options - настройки вывода логов
type Options struct {
	Env        string // "development" или "production"
	File       string // путь к файлу с ротацией, пусто - только stdout
	MaxSizeMB  int
	MaxBackups int
}

// Init инициализирует глобальный логгер
// env: "development" или "production"
func Init(env string) {
	Setup(Options{Env: env})
}

// Setup инициализирует глобальный логгер с дополнительным файловым выводом.
func Setup(opts Options) {
	var out io.Writer = os.Stdout
	if opts.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		})
	}
	log = New(opts.Env, out)
	slog.SetDefault(log)
}

// Wrap оборачивает handler глобального логгера (например, рассылкой ошибок).
// restore возвращает прежний логгер.
func Wrap(wrap func(slog.Handler) slog.Handler) (restore func()) {
	prev := GetLogger()
	log = slog.New(wrap(prev.Handler()))
	slog.SetDefault(log)
	return func() {
		log = prev
		slog.SetDefault(prev)
	}
}

// New собирает логгер без установки глобального (используется в тестах).
func New(env string, out io.Writer) *slog.Logger {
	hOpts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	var handler slog.Handler
	if env == "development" {
		// Development: читаемый текстовый формат
		hOpts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(out, hOpts)
	} else {
		// Production: JSON формат для парсинга
		handler = slog.NewJSONHandler(out, hOpts)
	}
	return slog.New(handler)
}

// GetLogger возвращает глобальный логгер
func GetLogger() *slog.Logger {
	if log == nil {
		// Fallback если Init не вызван
		Init("development")
	}
	return log
}

// ============================================
// Convenience функции для быстрого логирования
// ============================================

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal логирует fatal ошибку и завершает программу
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// With создает новый логгер с дополнительными полями
// Пример: logger.With("user_id", id, "action", "login").Info("user logged in")
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// WithError создает логгер с полем error
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}

// ============================================
// Специализированные логгеры
// ============================================

// HTTPLog логирует исходящий HTTP запрос к внешнему сервису
func HTTPLog(method, url string, status int, duration time.Duration, err error) {
	fields := []any{
		"method", method,
		"url", url,
		"status", status,
		"duration_ms", duration.Milliseconds(),
	}
	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("outgoing http request failed", fields...)
		return
	}
	GetLogger().Debug("outgoing http request", fields...)
}

// WorkerLog логирует background worker операцию
func WorkerLog(worker, operation string, err error, args ...any) {
	fields := append([]any{
		"worker", worker,
		"operation", operation,
	}, args...)

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("worker operation failed", fields...)
	} else {
		GetLogger().Info("worker operation completed", fields...)
	}
}
