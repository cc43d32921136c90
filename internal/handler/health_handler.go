package handler

import (
	"context"
	"time"

	"quiz-session/internal/domain"
	"quiz-session/internal/dto"
	"quiz-session/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthHandler answers liveness checks
type HealthHandler struct {
	cache domain.Cache
}

// NewHealthHandler creates a new HealthHandler. cache may be nil when caching is disabled.
func NewHealthHandler(cache domain.Cache) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Healthz godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Healthz(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok"}
	if h.cache == nil {
		return c.JSON(resp)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := h.cache.Ping(ctx); err != nil {
		// The cache is bypassed on failure, so the process stays live.
		logger.Get().Warn("Cache ping failed", zap.Error(err))
		resp.Cache = "unavailable"
	} else {
		resp.Cache = "ok"
	}
	return c.JSON(resp)
}
