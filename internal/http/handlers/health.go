package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/hivemind-backend/internal/services"
)

// ReadinessFunc reports whether backing stores answer. A nil func means ready.
type ReadinessFunc func(ctx context.Context) error

type HealthHandler struct {
	port      string
	aiHealth  services.AIHealthService
	readiness ReadinessFunc
}

func NewHealthHandler(port string, aiHealth services.AIHealthService, readiness ReadinessFunc) *HealthHandler {
	return &HealthHandler{port: port, aiHealth: aiHealth, readiness: readiness}
}

// GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to HiveMind API"})
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if h.readiness != nil {
		if err := h.readiness(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "port": h.port, "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "port": h.port})
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /ai/health
func (h *HealthHandler) AIHealth(c *gin.Context) {
	if h.aiHealth == nil {
		c.JSON(http.StatusOK, services.AIHealth{OCRProvider: "none", QuizStore: "none"})
		return
	}
	c.JSON(http.StatusOK, h.aiHealth.Health())
}
