package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kondate-ai/backend/internal/models"
	"github.com/kondate-ai/backend/internal/types"
)

type stubFeedback struct {
	created *types.FeedbackInput
	err     error
}

func (s *stubFeedback) Create(ctx context.Context, input types.FeedbackInput, userAgent, ipAddress string) (*models.Feedback, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &input
	return &models.Feedback{ID: uuid.New()}, nil
}

func setupFeedbackRouter(stub *stubFeedback) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewFeedbackHandler(stub).RegisterRoutes(r.Group("/api/v1"), noLimit())
	return r
}

func TestFeedbackHandler_CreateFeedback(t *testing.T) {
	t.Run("should create feedback and return its id", func(t *testing.T) {
		stub := &stubFeedback{}
		r := setupFeedbackRouter(stub)

		w := postJSON(t, r, "/api/v1/feedback", map[string]interface{}{
			"recipeId":       "r-1",
			"reasons":        []string{"too spicy"},
			"comment":        "Otherwise great.",
			"futureInterest": "interested",
			"rating":         5,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		require.NotNil(t, stub.created)
		assert.Equal(t, "r-1", stub.created.RecipeID)
	})

	t.Run("should reject invalid input before the service is called", func(t *testing.T) {
		stub := &stubFeedback{}
		r := setupFeedbackRouter(stub)

		w := postJSON(t, r, "/api/v1/feedback", map[string]interface{}{
			"recipeId":       "r-1",
			"reasons":        []string{},
			"futureInterest": "interested",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, CodeValidationError, resp.Error.Code)
		assert.Nil(t, stub.created)
	})

	t.Run("should map a persistence failure to an internal error", func(t *testing.T) {
		r := setupFeedbackRouter(&stubFeedback{err: assert.AnError})

		w := postJSON(t, r, "/api/v1/feedback", map[string]interface{}{
			"recipeId":       "r-1",
			"reasons":        []string{"bland"},
			"futureInterest": "notInterested",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, CodeInternalError, resp.Error.Code)
	})
}
