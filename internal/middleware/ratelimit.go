package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"microblog/internal/logger"
	"microblog/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Counter - атомарный счетчик с TTL (database.Redis).
type Counter interface {
	IncrWithExpire(ctx context.Context, key string, expiration time.Duration) (int64, error)
}

// RateLimitMiddleware ограничивает POST запросы с одного IP на эндпоинте.
// Без счетчика или с limit <= 0 лимит выключен. Ошибка Redis не блокирует пользователя.
func RateLimitMiddleware(counter Counter, name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "ratelimit:" + name + ":" + c.ClientIP()
		count, err := counter.IncrWithExpire(ctx, key, window)
		if err != nil {
			logger.CtxWarn(ctx, "Rate limit counter unavailable", "error", err)
			c.Next()
			return
		}

		if count > int64(limit) {
			logger.CtxWarn(ctx, "Rate limit exceeded", "endpoint", name, "ip", c.ClientIP(), "count", count)
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			apperrors.HandleError(c, apperrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}
