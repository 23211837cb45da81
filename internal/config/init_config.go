package config

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"portfolio-api/internal/api"
	"portfolio-api/internal/api/handlers"
	"portfolio-api/internal/llm"
	"portfolio-api/internal/logging"
	"portfolio-api/internal/metrics"
	"portfolio-api/internal/service"
	"portfolio-api/internal/storage"

	"go.uber.org/zap"
)

const validateTimeout = 10 * time.Second

// ------------------------------------------------------------------------------------------------------
func (c *Config) NewLogger() (*zap.Logger, error) {
	if err := logging.Init(c.LogLevel, c.IsDevelopment()); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logging.Logger, nil
}

// ------------------------------------------------------------------------------------------------------
// NewProvider returns nil when no API key is configured. The relay treats a nil
// provider as offline and answers with 503.
func (c *Config) NewProvider(ctx context.Context, logger *zap.Logger) (llm.Provider, error) {
	if !c.HasOpenAIKey() {
		logger.Warn("OPENAI_API_KEY is not set, chat relay will run in offline mode")
		return nil, nil
	}

	client, err := llm.NewOpenAIClient(c.OpenAIAPIKey, c.OpenAIModel, llm.WithBaseURL(c.OpenAIBaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	if c.OpenAIValidateOnStartup {
		vctx, cancel := context.WithTimeout(ctx, validateTimeout)
		defer cancel()
		if err := client.Validate(vctx); err != nil {
			logger.Warn("OpenAI credential check failed", zap.Error(err))
		} else {
			logger.Info("OpenAI credential check passed", zap.String("model", client.Model()))
		}
	}

	return client, nil
}

// ------------------------------------------------------------------------------------------------------
func (c *Config) NewUsageStore(logger *zap.Logger) storage.UsageStore {
	if c.RedisAddr == "" {
		return storage.NewMemoryStore()
	}

	redisStore, err := storage.NewRedisStore(c.RedisAddr, c.RedisPassword)
	if err != nil {
		logger.Warn("Failed to connect to Redis, recording usage in memory",
			zap.String("redis_addr", c.RedisAddr),
			zap.Error(err),
		)
		return storage.NewMemoryStore()
	}
	logger.Info("Connected to Redis", zap.String("redis_addr", c.RedisAddr))
	return redisStore
}

// ------------------------------------------------------------------------------------------------------
// NewTokenCounter is optional; without it usage falls back to what the provider reports.
func (c *Config) NewTokenCounter(logger *zap.Logger) *storage.TokenCounter {
	counter, err := storage.NewTokenCounter()
	if err != nil {
		logger.Warn("Failed to load tokenizer, usage estimates disabled", zap.Error(err))
		return nil
	}
	return counter
}

// ------------------------------------------------------------------------------------------------------
func (c *Config) NewMetrics() *metrics.Metrics {
	return metrics.New()
}

// ------------------------------------------------------------------------------------------------------
func (c *Config) NewRelayService(
	provider llm.Provider,
	usageStore storage.UsageStore,
	counter *storage.TokenCounter,
	m *metrics.Metrics,
	logger *zap.Logger,
) service.RelayService {
	return service.NewRelayService(provider, usageStore, counter, m, logger, service.Options{
		MaxTokens:   c.OpenAIMaxTokens,
		Temperature: c.OpenAITemperature,
	})
}

// ------------------------------------------------------------------------------------------------------
func (c *Config) NewHandler(relay service.RelayService, logger *zap.Logger) *handlers.Handler {
	return handlers.NewHandler(relay, logger, c.IsDevelopment())
}

// ------------------------------------------------------------------------------------------------------
func (c *Config) NewRouter(handler *handlers.Handler, m *metrics.Metrics, logger *zap.Logger) http.Handler {
	return api.SetupRouter(handler, m, logger, api.Options{
		AllowedOrigins: c.CORSAllowedOrigins,
		Development:    c.IsDevelopment(),
	})
}

// ------------------------------------------------------------------------------------------------------
// NewHTTPServer leaves WriteTimeout unset: a chat response waits on the provider
// for as long as the provider takes.
func (c *Config) NewHTTPServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:        c.Addr(),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
}

// ------------------------------------------------------------------------------------------------------
// NewMetricsServer returns nil when METRICS_ADDR is empty.
func (c *Config) NewMetricsServer(m *metrics.Metrics) *http.Server {
	if c.MetricsAddr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &http.Server{
		Addr:        c.MetricsAddr,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
	}
}
