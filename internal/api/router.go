package api

import (
	"net/http"

	"portfolio-api/internal/api/handlers"
	"portfolio-api/internal/metrics"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Options controls the middleware wrapped around the route table
type Options struct {
	AllowedOrigins []string
	Development    bool
}

// SetupRouter configures HTTP routes.
// Middleware wraps the whole router rather than using router.Use, because mux
// skips Use middleware for the NotFound and MethodNotAllowed handlers.
func SetupRouter(handler *handlers.Handler, m *metrics.Metrics, logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/", handler.HealthHandler).Methods(http.MethodGet)

	// Chat endpoint
	router.HandleFunc("/chat", handler.ChatHandler).Methods(http.MethodPost)

	// Everything else, including a known path with the wrong method, is a 404
	router.NotFoundHandler = http.HandlerFunc(handler.NotFoundHandler)
	router.MethodNotAllowedHandler = http.HandlerFunc(handler.NotFoundHandler)

	var h http.Handler = router
	h = CORSMiddleware(opts.AllowedOrigins, h)
	h = RecoveryMiddleware(logger, opts.Development, h)
	h = MetricsMiddleware(m, router, h)
	h = LoggingMiddleware(logger, h)
	h = RequestIDMiddleware(h)

	return h
}
