package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kondate-ai/backend/config"
	"github.com/kondate-ai/backend/internal/api"
	"github.com/kondate-ai/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	cfg *config.Config,
	recipeHandler *api.RecipeHandler,
	streamHandler *api.StreamHandler,
	feedbackHandler *api.FeedbackHandler,
	healthHandler *api.HealthHandler,
	generateLimiter *middleware.RateLimiter,
	feedbackLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")

	healthHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1, generateLimiter.Middleware())
	feedbackHandler.RegisterRoutes(v1, feedbackLimiter.Middleware())
	streamHandler.RegisterRoutes(v1)

	return router
}
