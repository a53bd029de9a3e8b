package app

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"microblog/internal/auth"
	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/email"
	"microblog/internal/handlers"
	"microblog/internal/i18n"
	"microblog/internal/logger"
	"microblog/internal/middleware"
	"microblog/internal/repositories"
	"microblog/internal/routes"
	"microblog/internal/services"
	"microblog/internal/translate"
	"microblog/internal/validator"
	"microblog/internal/web"
	"microblog/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Options позволяют тестам подменить внешние зависимости.
type Options struct {
	DB           *gorm.DB
	MailProvider email.Provider
	Translator   translate.Translator
}

// App - собранное приложение. Все зависимости создаются в Build из конфигурации,
// глобального состояния нет (кроме логгера и метрик).
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *database.Redis
	Mail     *workers.MailQueue
	Sessions *auth.SessionManager
	Services *services.ServiceContainer
	Router   *gin.Engine

	restoreLogger func()
}

func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger.Setup(logger.Options{
		Env:        cfg.Server.Env,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	application, err := Build(cfg, Options{})
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(application.DB); err != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return errors.Join(fmt.Errorf("failed to migrate database: %w", err), application.Close(closeCtx))
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case err := <-serverErr:
		if err != nil {
			runErr = fmt.Errorf("server startup error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	return errors.Join(runErr, application.Close(shutdownCtx))
}

// Build создает все зависимости и роутер, не открывая сетевой порт.
func Build(cfg *config.Config, opts Options) (*App, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := opts.DB
	if db == nil {
		var err error
		logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
		db, err = database.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connected")
	}

	a := &App{Config: cfg, DB: db}

	if cfg.Redis.Addr != "" {
		rdb, err := database.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// без Redis приложение работает, только без ограничения частоты запросов
			logger.Warn("Redis unavailable, rate limiting disabled", "error", err)
		} else {
			a.Redis = rdb
		}
	}
	fail := func(err error) (*App, error) {
		if a.Redis != nil {
			a.Redis.Close()
		}
		return nil, err
	}

	// воркеры стартуют в самом конце, чтобы ошибка сборки не оставила горутин
	a.Mail = NewMailQueue(cfg, db, opts.MailProvider)

	a.Sessions = auth.NewSessionManager(auth.SessionConfig{
		Name:        cfg.Security.SessionName,
		Secret:      cfg.Security.SecretKey,
		RememberFor: cfg.RememberFor(),
		Secure:      cfg.Security.SecureCookies,
	})

	bundle, err := i18n.New(cfg.App.Languages)
	if err != nil {
		return fail(err)
	}

	svc, err := initializeServices(cfg, a.Mail, opts.Translator)
	if err != nil {
		return fail(err)
	}
	a.Services = svc

	appHandlers, err := initializeHandlers(cfg, a, bundle)
	if err != nil {
		return fail(err)
	}

	tmpl, err := web.Templates(bundle)
	if err != nil {
		return fail(err)
	}

	a.Router = SetupRouter(cfg, a, bundle, appHandlers, tmpl)

	if cfg.IsProduction() && cfg.MailEnabled() {
		a.restoreLogger = logger.Wrap(func(next slog.Handler) slog.Handler {
			return NewErrorMailHandler(cfg, next, a.Mail)
		})
	}

	a.Mail.Start()
	return a, nil
}

// NewErrorMailHandler дублирует ERROR записи лога письмом администраторам.
func NewErrorMailHandler(cfg *config.Config, next slog.Handler, sender email.Enqueuer) slog.Handler {
	return email.NewErrorMailHandler(next, sender, email.ErrorMailConfig{
		From:       cfg.Sender(),
		To:         cfg.Email.Admins,
		Subject:    "Microblog Failure",
		SkipWorker: workers.MailWorkerName,
	})
}

// Close дожидается отправки писем из очереди и закрывает соединения.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.restoreLogger != nil {
		a.restoreLogger()
	}
	if a.Mail != nil {
		if err := a.Mail.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewMailQueue выбирает провайдера: SMTP при заданном smtp_host, иначе письма пишутся в лог.
func NewMailQueue(cfg *config.Config, db *gorm.DB, provider email.Provider) *workers.MailQueue {
	if provider == nil {
		if cfg.MailEnabled() {
			provider = email.NewSMTPProvider(&email.SMTPConfig{
				Host:     cfg.Email.SMTPHost,
				Port:     cfg.Email.SMTPPort,
				Username: cfg.Email.SMTPUsername,
				Password: cfg.Email.SMTPPassword,
				From:     cfg.Sender(),
				UseTLS:   cfg.Email.UseTLS,
			})
		} else {
			logger.Warn("SMTP server is not configured, emails will only be logged")
			provider = &email.LogProvider{}
		}
	}

	return workers.NewMailQueue(provider, db, repositories.NewFailedEmailRepository(), workers.MailQueueConfig{
		Workers:    cfg.Email.Workers,
		QueueSize:  cfg.Email.QueueSize,
		MaxRetries: cfg.Email.MaxRetries,
	})
}

func initializeServices(cfg *config.Config, mailer services.MailSender, translator translate.Translator) (*services.ServiceContainer, error) {
	templates, err := email.NewTemplateManager()
	if err != nil {
		return nil, err
	}

	if translator == nil {
		translator = translate.NewMicrosoftTranslator(translate.Config{
			Endpoint: cfg.Translator.Endpoint,
			Key:      cfg.Translator.Key,
			Region:   cfg.Translator.Region,
		})
	}

	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository()
	followRepo := repositories.NewFollowRepository()
	postRepo := repositories.NewPostRepository()

	// --- Инициализация сервисов ---
	resetTokens := auth.NewResetTokens(cfg.Security.SecretKey, cfg.ResetTokenTTL())

	return &services.ServiceContainer{
		AuthService: services.NewAuthService(userRepo, resetTokens, mailer, templates, services.AuthConfig{
			BaseURL: cfg.Server.BaseURL,
			Sender:  cfg.Sender(),
		}),
		UserService:        services.NewUserService(userRepo, followRepo),
		FollowService:      services.NewFollowService(userRepo, followRepo),
		PostService:        services.NewPostService(postRepo),
		TranslationService: services.NewTranslationService(translator),
	}, nil
}

func initializeHandlers(cfg *config.Config, a *App, bundle *i18n.Bundle) (*handlers.AppHandlers, error) {
	customValidator, err := validator.New(bundle)
	if err != nil {
		return nil, err
	}
	baseHandler := handlers.NewBaseHandler(customValidator, a.Sessions, bundle)

	limit := handlers.RateLimit{Requests: cfg.RateLimit.Requests, Window: cfg.RateLimitWindow()}
	checks := map[string]handlers.Pinger{}
	if a.Redis != nil {
		limit.Counter = a.Redis
		checks["redis"] = a.Redis
	}

	svc := a.Services
	return &handlers.AppHandlers{
		Base:          baseHandler,
		AuthHandler:   handlers.NewAuthHandler(baseHandler, svc.AuthService, limit),
		MainHandler:   handlers.NewMainHandler(baseHandler, svc.UserService, svc.PostService, svc.FollowService, svc.TranslationService, cfg.App.PostsPerPage),
		APIHandler:    handlers.NewAPIHandler(baseHandler, svc.UserService, svc.PostService, cfg.App.PostsPerPage),
		HealthHandler: handlers.NewHealthHandler(baseHandler, checks),
	}, nil
}

// SetupRouter собирает цепочку middleware и регистрирует маршруты.
func SetupRouter(cfg *config.Config, a *App, bundle *i18n.Bundle, appHandlers *handlers.AppHandlers, tmpl *template.Template) *gin.Engine {
	router := gin.New()
	// шаблоны ставятся до регистрации маршрутов
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		appHandlers.Base.HandlePageError(c, fmt.Errorf("panic: %v", recovered))
		c.Abort()
	}))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.DBMiddleware(a.DB))
	router.Use(middleware.LocaleMiddleware(bundle))
	router.Use(middleware.CurrentUserMiddleware(a.Sessions, a.Services.UserService))
	router.Use(middleware.CSRFMiddleware(a.Sessions, cfg.Security.CSRFEnabled, appHandlers.Base.CSRFFailed))

	routes.RegisterRoutes(router, appHandlers, routes.DefaultCORS())
	return router
}
