package middleware

import (
	"net/http"

	"microblog/internal/auth"
	"microblog/internal/logger"
	"microblog/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	CSRFFormField = "csrf_token"
	CSRFHeader    = "X-CSRF-Token"
)

// CSRFMiddleware требует токен сессии на каждом небезопасном запросе.
// onReject отвечает на отклоненный запрос; nil - JSON 403.
func CSRFMiddleware(sessions *auth.SessionManager, enabled bool, onReject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled || isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		token := c.GetHeader(CSRFHeader)
		if token == "" {
			token = c.PostForm(CSRFFormField)
		}

		if !sessions.ValidCSRFToken(c.Request, token) {
			logger.CtxWarn(c.Request.Context(), "CSRF token rejected", "path", c.Request.URL.Path)
			if onReject != nil {
				onReject(c)
				c.Abort()
				return
			}
			apperrors.HandleError(c, apperrors.ErrInvalidCSRFToken)
			return
		}
		c.Next()
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
