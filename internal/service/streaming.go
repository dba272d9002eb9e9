package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kondate-ai/backend/internal/llm"
	"github.com/kondate-ai/backend/internal/types"
)

// Stream statuses, one per state transition of a persona's pipeline.
const (
	StatusStarted   = "started"
	StatusProgress  = "progress"
	StatusCompleted = "completed"
	StatusError     = "error"
)

// RecipeStreamChunk is one streaming event for one persona. Content is
// cumulative: every progress chunk carries the full text so far.
type RecipeStreamChunk struct {
	AgentType types.AgentType `json:"agentType"`
	Status    string          `json:"status"`
	Content   string          `json:"content,omitempty"`
	Recipe    *types.Recipe   `json:"recipe,omitempty"`
	Progress  float64         `json:"progress"`
}

// StreamCallbacks receives the events of one session. OnChunk may be
// invoked concurrently from the three persona pipelines.
type StreamCallbacks struct {
	OnChunk    func(RecipeStreamChunk)
	OnComplete func()
}

// StreamingService coordinates streaming generation sessions. Each
// session is tracked in an explicit registry keyed by the caller's
// request id and removed when the session reaches its terminal state.
type StreamingService struct {
	client  llm.Client
	prompts *llm.PromptBuilder
	writer  IRecipeWriter
	stash   IDraftStash
	timeout time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	requestID string
	startedAt time.Time
}

// NewStreamingService creates a new StreamingService instance
func NewStreamingService(client llm.Client, writer IRecipeWriter, stash IDraftStash, timeout time.Duration) *StreamingService {
	return &StreamingService{
		client:   client,
		prompts:  llm.NewPromptBuilder(),
		writer:   writer,
		stash:    stash,
		timeout:  timeout,
		sessions: make(map[string]*session),
	}
}

// ActiveSessions reports the number of sessions currently running.
func (s *StreamingService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartSession begins the three-persona streaming generation for one
// request id. It returns immediately; events are delivered through cb.
// A request id already in flight is rejected.
func (s *StreamingService) StartSession(ctx context.Context, requestID string, input types.RecipeInput, cb StreamCallbacks) error {
	if requestID == "" {
		return fmt.Errorf("request id must not be empty")
	}

	s.mu.Lock()
	if _, exists := s.sessions[requestID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("session %s already in progress", requestID)
	}
	s.sessions[requestID] = &session{requestID: requestID, startedAt: time.Now()}
	s.mu.Unlock()

	if cb.OnChunk == nil {
		cb.OnChunk = func(RecipeStreamChunk) {}
	}

	go s.run(ctx, requestID, input, cb)
	return nil
}

func (s *StreamingService) run(ctx context.Context, requestID string, input types.RecipeInput, cb StreamCallbacks) {
	defer func() {
		s.mu.Lock()
		delete(s.sessions, requestID)
		s.mu.Unlock()

		if cb.OnComplete != nil {
			cb.OnComplete()
		}
	}()

	var wg sync.WaitGroup
	for _, agent := range types.AllAgents() {
		wg.Add(1)
		go func(agent types.AgentType) {
			defer wg.Done()
			s.runAgent(ctx, agent, input, cb)
		}(agent)
	}
	wg.Wait()
}

// runAgent drives one persona's state machine:
// idle -> started -> progress* -> (completed | error).
func (s *StreamingService) runAgent(ctx context.Context, agent types.AgentType, input types.RecipeInput, cb StreamCallbacks) {
	emit := cb.OnChunk
	emit(RecipeStreamChunk{AgentType: agent, Status: StatusStarted, Progress: 0})

	prompt, err := s.prompts.ForAgent(agent, input)
	if err != nil {
		emit(RecipeStreamChunk{AgentType: agent, Status: StatusError, Progress: 100})
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var accumulated strings.Builder
	err = s.client.GenerateStream(callCtx, prompt, llm.DefaultOptions(), func(fragment string) {
		accumulated.WriteString(fragment)
		content := accumulated.String()
		emit(RecipeStreamChunk{
			AgentType: agent,
			Status:    StatusProgress,
			Content:   content,
			Progress:  streamProgress(len(content)),
		})
	})
	if err != nil {
		log.Printf("[StreamingService] %s generation failed: %v", agent, err)
		emit(RecipeStreamChunk{AgentType: agent, Status: StatusError, Progress: 100})
		return
	}

	draft := llm.Parse(accumulated.String())
	if !llm.SanitizeSummary(draft) {
		log.Printf("[StreamingService] %s produced an unusable summary", agent)
		emit(RecipeStreamChunk{AgentType: agent, Status: StatusError, Progress: 100})
		return
	}

	id := uuid.New().String()
	detail := llm.SanitizeDetail(draft, id, draft.Title, agent)
	s.writer.Enqueue(detail)

	recipe := llm.BuildRecipe(draft, id, agent)
	if err := s.stash.Save(ctx, recipe); err != nil {
		log.Printf("[StreamingService] failed to stash recipe %s: %v", id, err)
	}

	emit(RecipeStreamChunk{AgentType: agent, Status: StatusCompleted, Recipe: &recipe, Progress: 100})
}

// streamProgress is the heuristic progress estimate for a stream of n
// accumulated bytes, capped at 90 until the terminal transition.
func streamProgress(n int) float64 {
	p := float64(n) / 10
	if p > 90 {
		return 90
	}
	return p
}
