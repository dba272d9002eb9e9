package main

import (
	"context"
	"log"

	"github.com/kondate-ai/backend/config"
	"github.com/kondate-ai/backend/internal/api"
	"github.com/kondate-ai/backend/internal/database"
	"github.com/kondate-ai/backend/internal/llm"
	"github.com/kondate-ai/backend/internal/middleware"
	"github.com/kondate-ai/backend/internal/router"
	"github.com/kondate-ai/backend/internal/server"
	"github.com/kondate-ai/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient := database.NewRedis(cfg)
	client := llm.NewOllamaClient(cfg.OllamaHost, cfg.OllamaModel)

	if !client.CheckModelAvailability(context.Background()) {
		log.Printf("[Main] Warning: model %s not reported by %s, generations may fail", cfg.OllamaModel, cfg.OllamaHost)
	}

	writer := service.NewRecipeWriter(db, 64)
	stash := service.NewDraftStash(redisClient)

	var images service.IImageService
	if cfg.ImagesEnabled() {
		svc, err := service.NewImageService(context.Background(), cfg)
		if err != nil {
			log.Printf("[Main] Image generation disabled: %v", err)
		} else {
			images = svc
		}
	}

	generation := service.NewGenerationService(client, db, writer, stash, images, cfg.GenerationTimeout)
	streaming := service.NewStreamingService(client, writer, stash, cfg.GenerationTimeout)
	feedback := service.NewFeedbackService(db)

	engine := router.SetupRouter(
		cfg,
		api.NewRecipeHandler(generation),
		api.NewStreamHandler(streaming),
		api.NewFeedbackHandler(feedback),
		api.NewHealthHandler(client),
		middleware.NewGenerationRateLimiter(redisClient, cfg.GenerateRateWindow, cfg.GenerateRateLimit),
		middleware.NewFeedbackRateLimiter(redisClient, cfg.FeedbackRateWindow, cfg.FeedbackRateLimit),
	)

	srv := server.New(engine, cfg.ServerHost, cfg.ServerPort)
	srv.OnShutdown(writer.Close)
	srv.OnShutdown(func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("[Main] Redis close failed: %v", err)
		}
	})

	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
