package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internmatch/portal/pkg/redis"
	"github.com/internmatch/portal/pkg/response"
)

// HealthHandler exposes liveness and readiness probes
type HealthHandler struct {
	redis *redis.Client
}

// NewHealthHandler creates the health handler
func NewHealthHandler(redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{redis: redisClient}
}

// Live handles GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// Ready handles GET /health/ready. The portal is ready when its
// credential store is reachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.redis != nil {
		if err := h.redis.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"redis":  err.Error(),
			})
			return
		}
	}
	response.Success(c, gin.H{"status": "ready"})
}
