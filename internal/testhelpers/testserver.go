package testhelpers

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"microblog/internal/app"
	"microblog/internal/config"
	"microblog/internal/email"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MailRecorder - провайдер писем, который складывает их в память.
type MailRecorder struct {
	mu   sync.Mutex
	sent []*email.Email
}

func (m *MailRecorder) Send(ctx context.Context, msg *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *MailRecorder) Validate() error { return nil }

// Sent возвращает копию отправленных писем.
func (m *MailRecorder) Sent() []*email.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*email.Email(nil), m.sent...)
}

// FakeTranslator переводит текст, добавляя префикс языка.
type FakeTranslator struct{}

func (FakeTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	return "[" + to + "] " + text, nil
}

// TestServer поднимает приложение на httptest сервере с in-memory базой.
// CSRF отключен, Redis не используется.
type TestServer struct {
	Server *httptest.Server
	App    *app.App
	DB     *gorm.DB
	Mail   *MailRecorder
}

// NewTestServer создает сервер; mutate позволяет поправить конфигурацию до сборки.
func NewTestServer(t *testing.T, mutate ...func(cfg *config.Config)) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.Security.CSRFEnabled = false
	cfg.App.PostsPerPage = 3
	for _, fn := range mutate {
		fn(cfg)
	}

	db := NewTestDB(t)
	mail := &MailRecorder{}

	application, err := app.Build(cfg, app.Options{
		DB:           db,
		MailProvider: mail,
		Translator:   FakeTranslator{},
	})
	require.NoError(t, err, "не удалось собрать приложение")

	ts := &TestServer{
		Server: httptest.NewServer(application.Router),
		App:    application,
		DB:     db,
		Mail:   mail,
	}
	t.Cleanup(ts.Close)
	return ts
}

// Close останавливает сервер и приложение. Повторный вызов безопасен.
func (ts *TestServer) Close() {
	ts.Server.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = ts.App.Close(ctx)
}

// Client - браузер с собственной cookie jar. Редиректы выполняются автоматически.
type Client struct {
	t    *testing.T
	base string
	http *http.Client

	// Header добавляется к каждому запросу клиента
	Header http.Header
}

func (ts *TestServer) NewClient(t *testing.T) *Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &Client{t: t, base: ts.Server.URL, http: &http.Client{Jar: jar}}
}

// Get выполняет GET и возвращает ответ (после редиректов) и тело.
func (c *Client) Get(path string) (*http.Response, string) {
	c.t.Helper()
	return c.SendRequest(http.MethodGet, path, nil, "")
}

// PostForm отправляет форму как браузер.
func (c *Client) PostForm(path string, form url.Values) (*http.Response, string) {
	c.t.Helper()
	return c.SendRequest(http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func (c *Client) SendRequest(method, path string, body io.Reader, contentType string) (*http.Response, string) {
	c.t.Helper()

	req, err := http.NewRequest(method, c.base+path, body)
	require.NoError(c.t, err)
	for k, v := range c.Header {
		req.Header[k] = v
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(respBody)
}

// Register регистрирует пользователя; клиент остается залогиненным.
func (c *Client) Register(username, emailAddr, password string) (*http.Response, string) {
	c.t.Helper()
	return c.PostForm("/register", url.Values{
		"username":  {username},
		"email":     {emailAddr},
		"password":  {password},
		"password2": {password},
	})
}

func (c *Client) Login(username, password string) (*http.Response, string) {
	c.t.Helper()
	return c.PostForm("/login", url.Values{"username": {username}, "password": {password}})
}
