package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewOpenAIClient("sk-test", "gpt-mock",
		WithBaseURL(srv.URL+"/v1/"),
		WithHTTPClient(&http.Client{Timeout: 2 * time.Second}),
	)
	require.NoError(t, err)
	return c
}

func TestNewOpenAIClient_EmptyKey(t *testing.T) {
	_, err := NewOpenAIClient("  ", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "api key")
}

func TestNewOpenAIClient_DefaultModel(t *testing.T) {
	c, err := NewOpenAIClient("sk-test", "")
	require.NoError(t, err)
	require.Equal(t, DefaultModel, c.Model())
}

func TestOpenAIClient_Complete_HappyPath(t *testing.T) {
	var got capturedRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-mock-0001",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Hello from mock  "}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 8, "total_tokens": 128}
		}`))
	})

	out, err := c.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "You are a test.",
		UserMessage:  "hi",
		MaxTokens:    300,
		Temperature:  0.7,
	})
	require.NoError(t, err)
	require.True(t, out.Found)
	require.Equal(t, "  Hello from mock  ", out.Text)
	require.Equal(t, "gpt-mock-0001", out.Model)
	require.Equal(t, 120, out.PromptTokens)
	require.Equal(t, 8, out.CompletionTokens)

	require.Equal(t, "gpt-mock", got.Model)
	require.Len(t, got.Messages, 2)
	require.Equal(t, "system", got.Messages[0].Role)
	require.Equal(t, "You are a test.", got.Messages[0].Content)
	require.Equal(t, "user", got.Messages[1].Role)
	require.Equal(t, "hi", got.Messages[1].Content)
	require.Equal(t, 300, got.MaxTokens)
	require.InDelta(t, 0.7, got.Temperature, 0.0001)
}

func TestOpenAIClient_Complete_NoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	})

	out, err := c.Complete(context.Background(), CompletionRequest{UserMessage: "hi"})
	require.NoError(t, err)
	require.False(t, out.Found)
	require.Empty(t, out.Text)
	require.Equal(t, "gpt-mock", out.Model)
}

func TestOpenAIClient_Complete_StructuredError(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		message string
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, message: "Rate limit reached for requests"},
		{name: "bad key", status: http.StatusUnauthorized, message: "Incorrect API key provided"},
		{name: "server error", status: http.StatusInternalServerError, message: "The server had an error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"error":{"message":"` + tc.message + `","type":"requests","code":"x"}}`))
			})

			_, err := c.Complete(context.Background(), CompletionRequest{UserMessage: "hi"})
			require.Error(t, err)

			perr, ok := AsProviderError(err)
			require.True(t, ok)
			require.Equal(t, tc.status, perr.StatusCode)
			require.Equal(t, tc.message, perr.Message)
		})
	}
}

func TestOpenAIClient_Complete_ErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`not-json`))
	})

	_, err := c.Complete(context.Background(), CompletionRequest{UserMessage: "hi"})
	perr, ok := AsProviderError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadGateway, perr.StatusCode)
	require.Empty(t, perr.Message)
}

func TestOpenAIClient_Complete_NetworkError(t *testing.T) {
	c, err := NewOpenAIClient("sk-test", "gpt-mock",
		WithBaseURL("http://127.0.0.1:1/v1"),
		WithHTTPClient(&http.Client{Timeout: 100 * time.Millisecond}),
	)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), CompletionRequest{UserMessage: "hi"})
	require.Error(t, err)
	_, ok := AsProviderError(err)
	require.False(t, ok)
	require.Contains(t, err.Error(), "create chat completion")
}

func TestOpenAIClient_Complete_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Complete(ctx, CompletionRequest{UserMessage: "hi"})
	require.Error(t, err)
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestOpenAIClient_Validate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/models", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gpt-mock","object":"model"}]}`))
	})

	require.NoError(t, c.Validate(context.Background()))
}

func TestOpenAIClient_Validate_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	})

	err := c.Validate(context.Background())
	perr, ok := AsProviderError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, perr.StatusCode)
}

func TestOpenAIClient_Complete_ZeroTemperatureIsSent(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","model":"gpt-mock","choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`))
	})

	_, err := c.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "You are a test.",
		UserMessage:  "hi",
		MaxTokens:    300,
		Temperature:  0,
	})
	require.NoError(t, err)

	temp, ok := body["temperature"]
	require.True(t, ok, "temperature missing from request body")
	require.InDelta(t, 0, temp, 1e-6)
}
