package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kondate-ai/backend/internal/service"
	"github.com/kondate-ai/backend/internal/types"
)

// FeedbackHandler serves the recipe feedback endpoint.
type FeedbackHandler struct {
	feedback service.IFeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler instance
func NewFeedbackHandler(feedback service.IFeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup, limiter gin.HandlerFunc) {
	router.POST("/feedback", limiter, h.CreateFeedback)
}

// CreateFeedback records one feedback entry for a generated recipe.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var input types.FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidationError, "invalid request body: "+err.Error())
		return
	}
	if err := input.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	feedback, err := h.feedback.Create(c.Request.Context(), input, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "failed to save feedback")
		return
	}

	respondCreated(c, gin.H{"id": feedback.ID.String()})
}
