package service

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kondate-ai/backend/internal/types"
)

func TestDraftStash(t *testing.T) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		t.Skip("Skipping Redis-dependent test - REDIS_HOST not set")
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	client := redis.NewClient(&redis.Options{Addr: host + ":" + port})
	defer client.Close()
	require.NoError(t, client.Ping(context.Background()).Err())

	stash := NewDraftStash(client)

	t.Run("should round-trip a summary recipe", func(t *testing.T) {
		recipe := types.Recipe{
			ID:              uuid.New().String(),
			AgentType:       types.AgentFusion,
			Title:           "Bulgogi Burrito",
			Description:     "Korean-Mexican mashup",
			CookingTime:     35,
			MainIngredients: []string{"beef", "tortilla", "gochujang"},
			Features:        []string{"bold", "portable", "original"},
		}

		require.NoError(t, stash.Save(context.Background(), recipe))

		got, err := stash.Get(context.Background(), recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, recipe, *got)

		ttl := client.TTL(context.Background(), "recipe:draft:"+recipe.ID).Val()
		assert.Greater(t, ttl.Hours(), 23.0)
	})

	t.Run("should fail for an unknown id", func(t *testing.T) {
		_, err := stash.Get(context.Background(), uuid.New().String())
		assert.Error(t, err)
	})
}
