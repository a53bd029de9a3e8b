package app_test

import (
	"bytes"
	"runtime"
	"testing"
	"time"

	"microblog/internal/app"
	"microblog/internal/config"
	"microblog/internal/email"
	"microblog/internal/logger"
	"microblog/internal/testhelpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keepGinMode(t *testing.T) {
	mode := gin.Mode()
	t.Cleanup(func() { gin.SetMode(mode) })
}

func TestBuild_ProductionMailsErrorsToAdmins(t *testing.T) {
	keepGinMode(t)
	ts := testhelpers.NewTestServer(t, func(cfg *config.Config) {
		cfg.Server.Env = "production"
		cfg.Email.SMTPHost = "smtp.example.com"
		cfg.Email.Admins = []string{"admin@example.com", "ops@example.com"}
	})

	logger.Info("User logged in", "username", "susan")
	logger.Error("Failed to load feed", "error", "database is locked")

	require.Eventually(t, func() bool { return len(ts.Mail.Sent()) > 0 }, 2*time.Second, 10*time.Millisecond)
	sent := ts.Mail.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Microblog Failure", sent[0].Subject)
	assert.Equal(t, "admin@example.com", sent[0].From)
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, sent[0].To)
	assert.Contains(t, sent[0].Body, `msg="Failed to load feed"`)
	assert.Contains(t, sent[0].Body, `error="database is locked"`)

	// после Close глобальный логгер снова пишет только в вывод
	ts.Close()
	_, wrapped := logger.GetLogger().Handler().(*email.ErrorMailHandler)
	assert.False(t, wrapped)
}

func TestBuild_DevelopmentDoesNotMailErrors(t *testing.T) {
	ts := testhelpers.NewTestServer(t, func(cfg *config.Config) {
		cfg.Email.SMTPHost = "smtp.example.com"
	})

	_, wrapped := logger.GetLogger().Handler().(*email.ErrorMailHandler)
	assert.False(t, wrapped)

	logger.Error("Failed to load feed", "error", "database is locked")
	assert.Empty(t, ts.Mail.Sent())
}

func TestBuild_TemplatesLoadedBeforeRoutes(t *testing.T) {
	keepGinMode(t)
	prevOut := gin.DefaultWriter
	t.Cleanup(func() { gin.DefaultWriter = prevOut })

	var out bytes.Buffer
	gin.SetMode(gin.DebugMode)
	gin.DefaultWriter = &out

	ts := testhelpers.NewTestServer(t)

	assert.Contains(t, out.String(), "/index", "маршруты должны попасть в отладочный вывод gin")
	assert.NotContains(t, out.String(), "SetHTMLTemplate() is NOT thread-safe")

	resp, body := ts.NewClient(t).Get("/login")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, body, `name="username"`)
}

func TestBuild_FailureLeavesNoMailWorkers(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	cfg := config.Default()
	cfg.App.Languages = nil
	cfg.Email.Workers = 32

	before := runtime.NumGoroutine()
	a, err := app.Build(cfg, app.Options{
		DB:           db,
		MailProvider: &testhelpers.MailRecorder{},
		Translator:   testhelpers.FakeTranslator{},
	})
	require.Error(t, err)
	assert.Nil(t, a)
	assert.Less(t, runtime.NumGoroutine(), before+cfg.Email.Workers)
}
