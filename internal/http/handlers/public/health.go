package public

import (
	"context"
	"time"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/logger"

	"github.com/gin-gonic/gin"
)

// Health 健康检查，Redis 不可用时标记为 degraded 但仍返回 200
func (h *Handler) Health(c *gin.Context) {
	status := "ok"
	if cache.Enabled() {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := cache.Ping(ctx); err != nil {
			logger.Warnw("health_redis_ping_failed", "error", err)
			status = "degraded"
		}
	}
	c.JSON(200, gin.H{"status": status})
}
