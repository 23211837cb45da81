package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const DefaultModel = "gpt-4o-mini"

// OpenAIClient sends relay requests to the OpenAI chat completions API
type OpenAIClient struct {
	api   *openai.Client
	model string
}

type Option func(*openai.ClientConfig)

// WithBaseURL points the client at an OpenAI-compatible endpoint, e.g. https://host/v1
func WithBaseURL(baseURL string) Option {
	return func(cfg *openai.ClientConfig) {
		if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
			cfg.BaseURL = baseURL
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(cfg *openai.ClientConfig) {
		if httpClient != nil {
			cfg.HTTPClient = httpClient
		}
	}
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, model string, opts ...Option) (*OpenAIClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai: api key must not be empty")
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(&cfg)
	}

	return &OpenAIClient{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}, nil
}

// Complete performs a non-streaming chat completion
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserMessage},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: wireTemperature(req.Temperature),
	})
	if err != nil {
		return Completion{}, translateError("create chat completion", err)
	}

	out := Completion{
		Model:            resp.Model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}
	if out.Model == "" {
		out.Model = c.model
	}
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		out.Text = resp.Choices[0].Message.Content
		out.Found = true
	}

	return out, nil
}

// wireTemperature keeps a configured 0 on the wire. The SDK drops a zero
// Temperature (omitempty), which the API would read as its default of 1.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

// Validate checks the credential by listing models
func (c *OpenAIClient) Validate(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return translateError("list models", err)
	}
	return nil
}

func (c *OpenAIClient) Model() string {
	return c.model
}

// translateError keeps the HTTP status of API failures; a RequestError has no
// structured message, so Message stays empty for the caller to default.
func translateError(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ProviderError{
			StatusCode: reqErr.HTTPStatusCode,
			Err:        err,
		}
	}

	return fmt.Errorf("openai: %s: %w", op, err)
}
