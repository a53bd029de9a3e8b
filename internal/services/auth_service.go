package services

import (
	"context"
	"errors"
	"strings"

	"microblog/internal/auth"
	"microblog/internal/email"
	"microblog/internal/logger"
	"microblog/internal/metrics"
	"microblog/internal/models"
	"microblog/internal/repositories"
	"microblog/internal/services/dto"
	"microblog/pkg/apperrors"

	"gorm.io/gorm"
)

// MailSender - асинхронная отправка писем (workers.MailQueue).
type MailSender interface {
	Enqueue(ctx context.Context, msg *email.Email) error
}

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, db *gorm.DB, username, password string) (*models.User, error)
	RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) error
	UserForResetToken(ctx context.Context, db *gorm.DB, token string) (*models.User, error)
	ResetPassword(ctx context.Context, db *gorm.DB, token, password string) error
}

// AuthConfig - параметры писем сброса пароля
type AuthConfig struct {
	BaseURL string
	Sender  string
}

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	tokens    *auth.ResetTokens
	mailer    MailSender
	templates *email.TemplateManager
	cfg       AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.ResetTokens,
	mailer MailSender,
	templates *email.TemplateManager,
	cfg AuthConfig,
) AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		tokens:    tokens,
		mailer:    mailer,
		templates: templates,
		cfg:       cfg,
	}
}

// Register создает пользователя. Предварительные проверки дают понятную ошибку,
// а гонку двух регистраций закрывает уникальный индекс в БД.
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	emailAddr := strings.TrimSpace(req.Email)

	if exists, err := s.userRepo.UsernameExists(db, username); err != nil {
		return nil, apperrors.DatabaseError(err)
	} else if exists {
		return nil, apperrors.ErrUsernameTaken
	}
	if exists, err := s.userRepo.EmailExists(db, emailAddr); err != nil {
		return nil, apperrors.DatabaseError(err)
	} else if exists {
		return nil, apperrors.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     username,
		Email:        emailAddr,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, mapUserRepoError(err)
	}

	metrics.UsersRegistered.Inc()
	logger.CtxInfo(ctx, "User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate не различает "нет пользователя" и "неверный пароль".
func (s *AuthServiceImpl) Authenticate(ctx context.Context, db *gorm.DB, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(db, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		logger.CtxWarn(ctx, "Failed login attempt", "username", username)
		return nil, apperrors.ErrInvalidCredentials
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return user, nil
}

// RequestPasswordReset ставит письмо в очередь, только если email известен.
// Для неизвестного адреса ошибки нет: ответ не должен выдавать, кто зарегистрирован.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, strings.TrimSpace(emailAddr))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxDebug(ctx, "Password reset requested for unknown email")
			return nil
		}
		return apperrors.DatabaseError(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	text, html, err := s.templates.Render("reset_password", email.TemplateData{
		"Username": user.Username,
		"ResetURL": strings.TrimRight(s.cfg.BaseURL, "/") + "/reset_password/" + token,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	msg := &email.Email{
		From:     s.cfg.Sender,
		To:       []string{user.Email},
		Subject:  "[Microblog] Reset Your Password",
		Body:     text,
		HTMLBody: html,
	}
	if err := s.mailer.Enqueue(ctx, msg); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Password reset email queued", "user_id", user.ID)
	return nil
}

// UserForResetToken - любой дефект токена дает одну и ту же ошибку.
func (s *AuthServiceImpl) UserForResetToken(ctx context.Context, db *gorm.DB, token string) (*models.User, error) {
	userID, ok := s.tokens.Verify(token)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.DatabaseError(err)
	}
	return user, nil
}

func (s *AuthServiceImpl) ResetPassword(ctx context.Context, db *gorm.DB, token, password string) error {
	user, err := s.UserForResetToken(ctx, db, token)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		return mapUserRepoError(err)
	}

	logger.CtxInfo(ctx, "Password reset", "user_id", user.ID)
	return nil
}

// mapUserRepoError переводит sentinel ошибки репозитория в доменные.
func mapUserRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrUsernameTaken):
		return apperrors.ErrUsernameTaken
	case errors.Is(err, repositories.ErrEmailTaken):
		return apperrors.ErrEmailTaken
	default:
		return apperrors.DatabaseError(err)
	}
}
