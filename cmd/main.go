package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"portfolio-api/internal/config"
	"portfolio-api/internal/logging"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	logger.Info("Starting SMK Portfolio API",
		zap.Int("port", cfg.Port),
		zap.String("model", cfg.OpenAIModel),
		zap.Bool("openai_configured", cfg.HasOpenAIKey()),
		zap.String("redis_addr", cfg.RedisAddr),
	)

	provider, err := cfg.NewProvider(context.Background(), logger)
	if err != nil {
		logger.Fatal("Failed to create provider", zap.Error(err))
	}

	usageStore := cfg.NewUsageStore(logger)
	defer usageStore.Close()

	m := cfg.NewMetrics()

	relay := cfg.NewRelayService(provider, usageStore, cfg.NewTokenCounter(logger), m, logger)

	handler := cfg.NewHandler(relay, logger)

	router := cfg.NewRouter(handler, m, logger)

	srv := cfg.NewHTTPServer(router)

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	metricsSrv := cfg.NewMetricsServer(m)
	if metricsSrv != nil {
		go func() {
			logger.Info("Metrics server starting", zap.String("addr", metricsSrv.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("Shutting down server", zap.String("signal", sig.String()))

	// In-flight requests are not drained
	if err := srv.Close(); err != nil {
		logger.Error("Failed to close server", zap.Error(err))
	}
	if metricsSrv != nil {
		_ = metricsSrv.Close()
	}

	logger.Info("Server stopped")
}
