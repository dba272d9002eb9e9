package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kondate-ai/backend/internal/types"
)

const draftTTL = 24 * time.Hour

// DraftStash keeps generated summary recipes in Redis for a day so a
// later detail request can resolve a recipe id it has not persisted.
type DraftStash struct {
	redis *redis.Client
}

// NewDraftStash creates a new DraftStash instance
func NewDraftStash(redisClient *redis.Client) *DraftStash {
	return &DraftStash{redis: redisClient}
}

func draftKey(id string) string {
	return fmt.Sprintf("recipe:draft:%s", id)
}

// Save stores a summary recipe under its id with a 24h TTL.
func (s *DraftStash) Save(ctx context.Context, recipe types.Recipe) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(recipe.ID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}
	return nil
}

// Get retrieves a stashed summary recipe by id.
func (s *DraftStash) Get(ctx context.Context, id string) (*types.Recipe, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var recipe types.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &recipe, nil
}
