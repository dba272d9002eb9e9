package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kondate-ai/backend/internal/models"
	"github.com/kondate-ai/backend/internal/types"
)

// FeedbackService records user feedback on generated recipes.
type FeedbackService struct {
	db *gorm.DB
}

// NewFeedbackService creates a new FeedbackService instance
func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// Create validates and stores one feedback entry. Nothing is written
// when validation fails.
func (s *FeedbackService) Create(ctx context.Context, input types.FeedbackInput, userAgent, ipAddress string) (*models.Feedback, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		ID:             uuid.New(),
		RecipeID:       input.RecipeID,
		Reasons:        models.StringArray(input.Reasons),
		Comment:        input.Comment,
		FutureInterest: input.FutureInterest,
		Rating:         input.Rating,
		UserAgent:      userAgent,
		IPAddress:      ipAddress,
	}

	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}
	return feedback, nil
}
