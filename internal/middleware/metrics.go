package middleware

import (
	"strconv"
	"time"

	"microblog/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware считает запросы по шаблону маршрута, а не по URL,
// чтобы /user/:username не плодил отдельный ряд на каждого пользователя.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
