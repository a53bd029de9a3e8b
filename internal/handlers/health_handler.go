package handlers

import (
	"context"
	"net/http"
	"time"

	"microblog/internal/logger"

	"github.com/gin-gonic/gin"
)

// Pinger - зависимость, доступность которой показывает /health
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	*BaseHandler
	checks map[string]Pinger
}

func NewHealthHandler(base *BaseHandler, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{BaseHandler: base, checks: checks}
}

func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health godoc
// @Summary Проверка состояния
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	components := gin.H{}

	if sqlDB, err := h.GetDB(c).DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status = http.StatusServiceUnavailable
		components["database"] = "down"
	} else {
		components["database"] = "ok"
	}

	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			logger.CtxWarn(ctx, "Health check failed", "component", name, "error", err)
			status = http.StatusServiceUnavailable
			components[name] = "down"
			continue
		}
		components[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "components": components})
}
