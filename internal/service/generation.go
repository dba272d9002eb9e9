package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kondate-ai/backend/internal/llm"
	"github.com/kondate-ai/backend/internal/models"
	"github.com/kondate-ai/backend/internal/types"
)

// ErrAllGenerationsFailed is returned when every persona's model call
// failed; the only failure mode of the three-way generation.
var ErrAllGenerationsFailed = errors.New("all recipe generations failed")

// ErrRecipeNotFound is returned when no persisted recipe matches an id.
var ErrRecipeNotFound = errors.New("recipe not found")

// GenerationService runs the three-persona generation pipeline.
type GenerationService struct {
	client  llm.Client
	prompts *llm.PromptBuilder
	db      *gorm.DB
	writer  IRecipeWriter
	stash   IDraftStash
	images  IImageService
	timeout time.Duration
}

// NewGenerationService creates a new GenerationService instance.
// images may be nil when the optional image pipeline is not configured.
func NewGenerationService(client llm.Client, db *gorm.DB, writer IRecipeWriter, stash IDraftStash, images IImageService, timeout time.Duration) *GenerationService {
	return &GenerationService{
		client:  client,
		prompts: llm.NewPromptBuilder(),
		db:      db,
		writer:  writer,
		stash:   stash,
		images:  images,
		timeout: timeout,
	}
}

type generationOutcome struct {
	raw string
	err error
}

// GenerateRecipes fans the request out to the three personas and
// always returns exactly three recipes unless every model call failed.
// Each persona's pipeline is isolated: an upstream failure or a
// rejected summary is replaced with that persona's fallback recipe.
func (s *GenerationService) GenerateRecipes(ctx context.Context, input types.RecipeInput) ([]types.Recipe, error) {
	agents := types.AllAgents()
	outcomes := make([]generationOutcome, len(agents))

	var wg sync.WaitGroup
	for i, agent := range agents {
		wg.Add(1)
		go func(i int, agent types.AgentType) {
			defer wg.Done()

			prompt, err := s.prompts.ForAgent(agent, input)
			if err != nil {
				outcomes[i] = generationOutcome{err: err}
				return
			}

			callCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			raw, err := s.client.Generate(callCtx, prompt, llm.DefaultOptions())
			outcomes[i] = generationOutcome{raw: raw, err: err}
		}(i, agent)
	}
	wg.Wait()

	recipes := make([]types.Recipe, 0, len(agents))
	fallbacks := make([]bool, 0, len(agents))
	upstreamFailures := 0
	for i, agent := range agents {
		id := uuid.New().String()
		outcome := outcomes[i]

		if outcome.err != nil {
			log.Printf("[GenerationService] %s generation failed: %v", agent, outcome.err)
			upstreamFailures++
			recipes = append(recipes, llm.FallbackRecipe(id, agent))
			fallbacks = append(fallbacks, true)
			continue
		}

		draft := llm.Parse(outcome.raw)
		if !llm.SanitizeSummary(draft) {
			log.Printf("[GenerationService] invalid %s recipe data, using fallback", agent)
			recipes = append(recipes, llm.FallbackRecipe(id, agent))
			fallbacks = append(fallbacks, true)
			continue
		}

		recipe := llm.BuildRecipe(draft, id, agent)
		log.Printf("[GenerationService] generated %s recipe: %s", agent, recipe.Title)
		recipes = append(recipes, recipe)
		fallbacks = append(fallbacks, false)
	}

	if upstreamFailures == len(agents) {
		return nil, ErrAllGenerationsFailed
	}

	// Only successfully generated summaries are stashed; fallbacks
	// carry no data worth resolving into a detail request later.
	for i, recipe := range recipes {
		if fallbacks[i] {
			continue
		}
		if err := s.stash.Save(ctx, recipe); err != nil {
			log.Printf("[GenerationService] failed to stash recipe %s: %v", recipe.ID, err)
		}
	}

	return recipes, nil
}

// GenerateRecipeDetail runs the single-persona detail pipeline. It has
// no fallback: the summary already succeeded, so errors propagate.
// Persistence and image generation are handed off and never block the
// returned detail.
func (s *GenerationService) GenerateRecipeDetail(ctx context.Context, id, title string, agent types.AgentType) (*types.RecipeDetail, error) {
	if !agent.Valid() {
		return nil, fmt.Errorf("unknown agent type: %s", agent)
	}

	prompt := s.prompts.ForDetail(title, agent)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.Generate(callCtx, prompt, llm.DetailOptions())
	if err != nil {
		return nil, err
	}

	draft := llm.Parse(raw)
	detail := llm.SanitizeDetail(draft, id, title, agent)

	s.writer.Enqueue(detail)
	s.generateImage(detail)

	return detail, nil
}

// generateImage kicks off the optional dish image generation in the
// background; a second write re-persists the record with the URL set.
func (s *GenerationService) generateImage(detail *types.RecipeDetail) {
	if s.images == nil {
		return
	}
	copied := *detail
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		url, err := s.images.GenerateRecipeImage(ctx, copied.Title, copied.Description)
		if err != nil {
			log.Printf("[GenerationService] image generation for %s failed: %v", copied.ID, err)
			return
		}
		copied.ImageURL = url
		s.writer.Enqueue(&copied)
	}()
}

// GetRecipeByID fetches a persisted detailed recipe.
func (s *GenerationService) GetRecipeByID(ctx context.Context, id string) (*types.RecipeDetail, error) {
	var record models.Recipe
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return record.ToDetail(), nil
}

// ResolveDraft looks a generated summary up in the stash.
func (s *GenerationService) ResolveDraft(ctx context.Context, id string) (*types.Recipe, error) {
	return s.stash.Get(ctx, id)
}
