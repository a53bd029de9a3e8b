package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"microblog/internal/auth"
	"microblog/internal/email"
	"microblog/internal/repositories"
	"microblog/internal/services"

	"github.com/stretchr/testify/require"
)

// fakeMailer запоминает письма вместо отправки.
type fakeMailer struct {
	mu   sync.Mutex
	sent []*email.Email
}

func (m *fakeMailer) Enqueue(ctx context.Context, msg *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) Sent() []*email.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*email.Email(nil), m.sent...)
}

type testServices struct {
	*services.ServiceContainer
	Mailer *fakeMailer
	Tokens *auth.ResetTokens
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	templates, err := email.NewTemplateManager()
	require.NoError(t, err)

	userRepo := repositories.NewUserRepository()
	followRepo := repositories.NewFollowRepository()
	postRepo := repositories.NewPostRepository()

	mailer := &fakeMailer{}
	tokens := auth.NewResetTokens("test-secret", 10*time.Minute)

	return &testServices{
		ServiceContainer: &services.ServiceContainer{
			AuthService: services.NewAuthService(userRepo, tokens, mailer, templates, services.AuthConfig{
				BaseURL: "http://localhost:5000",
				Sender:  "admin@example.com",
			}),
			UserService:   services.NewUserService(userRepo, followRepo),
			FollowService: services.NewFollowService(userRepo, followRepo),
			PostService:   services.NewPostService(postRepo),
		},
		Mailer: mailer,
		Tokens: tokens,
	}
}
