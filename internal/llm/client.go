package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

// GenerateOptions is the sampling configuration for one model call.
type GenerateOptions struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// DefaultOptions returns the sampling defaults for summary generation.
func DefaultOptions() GenerateOptions {
	return GenerateOptions{Temperature: 0.7, TopP: 0.9, MaxTokens: 1500}
}

// DetailOptions returns the sampling defaults for detail generation.
func DetailOptions() GenerateOptions {
	return GenerateOptions{Temperature: 0.6, TopP: 0.8, MaxTokens: 2500}
}

// UpstreamError is returned when the model service is unreachable or
// answers with an error status. It is never retried by the client.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model generation failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("model generation failed: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client is the single-attempt interface to the text-generation service.
type Client interface {
	// Generate performs one blocking generation call.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	// GenerateStream performs one streaming generation call, invoking
	// onChunk with each non-empty fragment in the order produced,
	// strictly before the call returns.
	GenerateStream(ctx context.Context, prompt string, opts GenerateOptions, onChunk func(string)) error
	// CheckModelAvailability reports whether the configured model is
	// present upstream. Advisory only; it never blocks generation.
	CheckModelAvailability(ctx context.Context) bool
}

// OllamaClient talks to an Ollama server over its HTTP API.
type OllamaClient struct {
	host   string
	model  string
	client *http.Client
}

// NewOllamaClient creates a client for the given Ollama host and model.
func NewOllamaClient(host, model string) *OllamaClient {
	return &OllamaClient{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		client: &http.Client{},
	}
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

func (c *OllamaClient) post(ctx context.Context, prompt string, opts GenerateOptions, stream bool) (*http.Response, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: stream,
		Options: generateOptions{
			Temperature: opts.Temperature,
			TopP:        opts.TopP,
			NumPredict:  opts.MaxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: "request failed", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, &UpstreamError{Message: fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))}
	}

	return resp, nil
}

// Generate performs one blocking generation call and returns the full
// response text.
func (c *OllamaClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	resp, err := c.post(ctx, prompt, opts, false)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &UpstreamError{Message: "failed to decode response", Err: err}
	}
	if result.Error != "" {
		return "", &UpstreamError{Message: result.Error}
	}

	return result.Response, nil
}

// GenerateStream performs one streaming generation call. The response
// is a newline-delimited JSON stream; each entry's text is handed to
// onChunk in order of arrival.
func (c *OllamaClient) GenerateStream(ctx context.Context, prompt string, opts GenerateOptions, onChunk func(string)) error {
	resp, err := c.post(ctx, prompt, opts, true)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	dec := json.NewDecoder(resp.Body)
	for {
		var chunk generateResponse
		if err := dec.Decode(&chunk); err != nil {
			if err == io.EOF {
				return nil
			}
			return &UpstreamError{Message: "stream interrupted", Err: err}
		}
		if chunk.Error != "" {
			return &UpstreamError{Message: chunk.Error}
		}
		if chunk.Response != "" {
			onChunk(chunk.Response)
		}
		if chunk.Done {
			return nil
		}
	}
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// CheckModelAvailability queries the model list and reports whether
// the configured model is installed.
func (c *OllamaClient) CheckModelAvailability(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("[OllamaClient] failed to check model availability: %v", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false
	}

	base := strings.SplitN(c.model, ":", 2)[0]
	for _, m := range tags.Models {
		if m.Name == c.model || strings.HasPrefix(m.Name, base) {
			return true
		}
	}
	log.Printf("[OllamaClient] model %s not found upstream", c.model)
	return false
}
