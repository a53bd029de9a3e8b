package middleware

import (
	"net/http"
	"net/url"

	"microblog/internal/auth"
	"microblog/internal/i18n"
	"microblog/internal/logger"
	"microblog/internal/models"
	"microblog/internal/services"
	"microblog/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentUserMiddleware загружает пользователя из сессии и обновляет last_seen.
// Для анонимного запроса ничего не делает.
func CurrentUserMiddleware(sessions *auth.SessionManager, users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := sessions.UserID(c.Request)
		if userID == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		db := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)

		user, err := users.GetByID(ctx, db, userID)
		if err != nil {
			// пользователь удален или БД недоступна: считаем запрос анонимным
			logger.CtxWarn(ctx, "Session user not loaded", "user_id", userID, "error", err)
			c.Next()
			return
		}

		if err := users.TouchLastSeen(ctx, db, user.ID); err != nil {
			logger.CtxWarn(ctx, "Failed to update last_seen", "user_id", user.ID, "error", err)
		}

		c.Set(contextkeys.CurrentUserKey, user)
		c.Request = c.Request.WithContext(logger.WithUserID(ctx, user.ID))
		c.Next()
	}
}

// RequireLogin отправляет анонимов на /login с возвратом на исходную страницу.
func RequireLogin(sessions *auth.SessionManager, bundle *i18n.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Next()
			return
		}

		msg := bundle.T(Locale(c), "Please log in to access this page.")
		if err := sessions.AddFlash(c.Writer, c.Request, msg); err != nil {
			logger.CtxWarn(c.Request.Context(), "Failed to save flash", "error", err)
		}

		target := "/login?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

// CurrentUser возвращает залогиненного пользователя или nil.
func CurrentUser(c *gin.Context) *models.User {
	val, ok := c.Get(contextkeys.CurrentUserKey)
	if !ok {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}
