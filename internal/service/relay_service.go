package service

import (
	"context"
	"strings"
	"time"

	apperror "portfolio-api/internal/error"
	"portfolio-api/internal/llm"
	"portfolio-api/internal/metrics"
	"portfolio-api/internal/storage"

	"go.uber.org/zap"
)

const (
	DefaultMaxTokens   = 300
	DefaultTemperature = 0.7
)

// Options tunes the completion parameters sent with every relay call
type Options struct {
	MaxTokens   int
	Temperature float32
}

// relayService validates chat messages and forwards them to the provider
type relayService struct {
	provider    llm.Provider          // nil when no credential was configured
	usageStore  storage.UsageStore    // Can be nil
	counter     *storage.TokenCounter // Can be nil
	metrics     *metrics.Metrics
	logger      *zap.Logger
	maxTokens   int
	temperature float32
	now         func() time.Time
}

// NewRelayService creates a new relay service with injected dependencies
func NewRelayService(
	provider llm.Provider,
	usageStore storage.UsageStore,
	counter *storage.TokenCounter,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts Options,
) RelayService {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &relayService{
		provider:    provider,
		usageStore:  usageStore,
		counter:     counter,
		metrics:     m,
		logger:      logger,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		now:         time.Now,
	}
}

func (s *relayService) ProviderConfigured() bool {
	return s.provider != nil
}

// Relay processes a chat request and returns the reply text
func (s *relayService) Relay(ctx context.Context, req *ChatRequest) (string, error) {
	message, err := req.Validate()
	if err != nil {
		s.metrics.ChatOutcome(string(apperror.ErrorTypeValidation))
		return "", err
	}

	if s.provider == nil {
		s.metrics.ChatOutcome(string(apperror.ErrorTypeUnavailable))
		return "", apperror.NewServiceUnavailableError(MsgServiceUnavailable, ReplyOffline)
	}

	completion, err := s.provider.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: SystemPrompt,
		UserMessage:  message,
		MaxTokens:    s.maxTokens,
		Temperature:  s.temperature,
	})
	if err != nil {
		s.logger.Error("Error in chat relay", zap.Error(err))
		appErr := mapProviderError(err)
		s.metrics.ChatOutcome(string(appErr.Type))
		return "", appErr
	}

	reply := ReplyApology
	if completion.Found {
		reply = completion.Text
	}

	s.recordUsage(ctx, message, completion)
	s.metrics.ChatOutcome("success")

	return trimText(reply), nil
}

// mapProviderError mirrors structured provider failures and hides everything else behind a 500
func mapProviderError(err error) *apperror.AppError {
	if perr, ok := llm.AsProviderError(err); ok {
		message := strings.TrimSpace(perr.Message)
		if message == "" {
			message = MsgUpstreamDefault
		}
		return apperror.NewUpstreamError(perr.StatusCode, message, ReplyUpstream, err)
	}
	return apperror.NewInternalError(MsgInternalServerError, ReplyInternal, err)
}

// recordUsage is best effort: failures are logged and never reach the caller
func (s *relayService) recordUsage(ctx context.Context, message string, c llm.Completion) {
	promptTokens, completionTokens := c.PromptTokens, c.CompletionTokens
	if promptTokens == 0 && completionTokens == 0 && s.counter != nil {
		if n, err := s.counter.CountMessages(SystemPrompt, message); err == nil {
			promptTokens = n
		}
		if n, err := s.counter.CountText(c.Text); err == nil {
			completionTokens = n
		}
	}

	s.metrics.Tokens(c.Model, promptTokens, completionTokens)

	if s.usageStore == nil {
		return
	}

	err := s.usageStore.Record(context.WithoutCancel(ctx), storage.Usage{
		Day:              storage.DayKey(s.now()),
		Model:            c.Model,
		PromptTokens:     int64(promptTokens),
		CompletionTokens: int64(completionTokens),
		Requests:         1,
	})
	if err != nil {
		s.logger.Warn("Failed to record token usage",
			zap.String("model", c.Model),
			zap.Error(err),
		)
	}
}
