package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kondate-ai/backend/internal/llm"
	"github.com/kondate-ai/backend/internal/types"
)

// mockClient scripts the model's behavior per persona. The persona is
// recovered from the prompt's framing text.
type mockClient struct {
	mu sync.Mutex

	// responses maps a persona to its blocking response.
	responses map[types.AgentType]string
	// failures maps a persona to an error returned instead.
	failures map[types.AgentType]error
	// fragments maps a persona to its streamed fragments.
	fragments map[types.AgentType][]string

	prompts []string
}

func newMockClient() *mockClient {
	return &mockClient{
		responses: make(map[types.AgentType]string),
		failures:  make(map[types.AgentType]error),
		fragments: make(map[types.AgentType][]string),
	}
}

func agentFromPrompt(prompt string) types.AgentType {
	switch {
	case strings.Contains(prompt, "fusion"):
		return types.AgentFusion
	case strings.Contains(prompt, "health"):
		return types.AgentHealthy
	default:
		return types.AgentClassic
	}
}

func (m *mockClient) record(prompt string) types.AgentType {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	return agentFromPrompt(prompt)
}

func (m *mockClient) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	agent := m.record(prompt)
	if err := m.failures[agent]; err != nil {
		return "", err
	}
	if resp, ok := m.responses[agent]; ok {
		return resp, nil
	}
	return "", fmt.Errorf("no scripted response for %s", agent)
}

func (m *mockClient) GenerateStream(ctx context.Context, prompt string, opts llm.GenerateOptions, onChunk func(string)) error {
	agent := m.record(prompt)
	if err := m.failures[agent]; err != nil {
		return err
	}
	for _, fragment := range m.fragments[agent] {
		onChunk(fragment)
	}
	return nil
}

func (m *mockClient) CheckModelAvailability(ctx context.Context) bool { return true }

// mockWriter records every enqueued detail.
type mockWriter struct {
	mu      sync.Mutex
	details []*types.RecipeDetail
}

func (w *mockWriter) Enqueue(detail *types.RecipeDetail) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.details = append(w.details, detail)
}

func (w *mockWriter) all() []*types.RecipeDetail {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*types.RecipeDetail(nil), w.details...)
}

// mockStash is an in-memory IDraftStash.
type mockStash struct {
	mu      sync.Mutex
	recipes map[string]types.Recipe
	saveErr error
}

func newMockStash() *mockStash {
	return &mockStash{recipes: make(map[string]types.Recipe)}
}

func (s *mockStash) Save(ctx context.Context, recipe types.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.recipes[recipe.ID] = recipe
	return nil
}

func (s *mockStash) Get(ctx context.Context, id string) (*types.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recipe, ok := s.recipes[id]
	if !ok {
		return nil, fmt.Errorf("draft %s not found", id)
	}
	return &recipe, nil
}

func validInput() types.RecipeInput {
	return types.RecipeInput{
		Theme:           "weeknight dinner",
		CookingTime:     "30min",
		Difficulty:      "beginner",
		SpecialRequests: []string{},
		Priority:        "quick",
	}
}
