package service

import (
	"context"

	"github.com/kondate-ai/backend/internal/models"
	"github.com/kondate-ai/backend/internal/types"
)

// IGenerationService defines the blocking generation operations.
type IGenerationService interface {
	GenerateRecipes(ctx context.Context, input types.RecipeInput) ([]types.Recipe, error)
	GenerateRecipeDetail(ctx context.Context, id, title string, agent types.AgentType) (*types.RecipeDetail, error)
	GetRecipeByID(ctx context.Context, id string) (*types.RecipeDetail, error)
	ResolveDraft(ctx context.Context, id string) (*types.Recipe, error)
}

// IStreamingService defines the streaming session coordinator.
type IStreamingService interface {
	StartSession(ctx context.Context, requestID string, input types.RecipeInput, cb StreamCallbacks) error
}

// IFeedbackService defines the feedback operations.
type IFeedbackService interface {
	Create(ctx context.Context, input types.FeedbackInput, userAgent, ipAddress string) (*models.Feedback, error)
}

// IRecipeWriter is the background persistence queue.
type IRecipeWriter interface {
	Enqueue(detail *types.RecipeDetail)
}

// IDraftStash is the short-lived store for generated summaries.
type IDraftStash interface {
	Save(ctx context.Context, recipe types.Recipe) error
	Get(ctx context.Context, id string) (*types.Recipe, error)
}

// IImageService generates an optional dish image for a recipe.
type IImageService interface {
	GenerateRecipeImage(ctx context.Context, title, description string) (string, error)
}
