package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kondate-ai/backend/internal/llm"
)

// HealthHandler reports liveness and model availability.
type HealthHandler struct {
	client llm.Client
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(client llm.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"model_available": h.client.CheckModelAvailability(c.Request.Context()),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}
