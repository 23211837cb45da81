package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	apperror "portfolio-api/internal/error"
	"portfolio-api/internal/service"

	"go.uber.org/zap"
)

const (
	ServiceName    = "SMK Portfolio API"
	ServiceVersion = "1.0.0"

	statusOnline          = "online"
	providerConfigured    = "configured"
	providerNotConfigured = "not configured"
	healthTimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

type Handler struct {
	relay       service.RelayService
	logger      *zap.Logger
	development bool
	now         func() time.Time
}

// HealthResponse is the body of GET /
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	OpenAI    string `json:"openai"`
	Timestamp string `json:"timestamp"`
}

// ------------------------------------------------------------------------------------------------------
// NewHandler builds the route handlers. In development, unhandled failures echo their detail.
func NewHandler(relay service.RelayService, logger *zap.Logger, development bool) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		relay:       relay,
		logger:      logger,
		development: development,
		now:         time.Now,
	}
}

// ------------------------------------------------------------------------------------------------------
// HealthHandler reports liveness and whether a provider credential was present at startup.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	openai := providerNotConfigured
	if h.relay.ProviderConfigured() {
		openai = providerConfigured
	}

	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    statusOnline,
		Service:   ServiceName,
		Version:   ServiceVersion,
		OpenAI:    openai,
		Timestamp: h.now().UTC().Format(healthTimestampLayout),
	})
}

// ------------------------------------------------------------------------------------------------------
// NotFoundHandler answers every unmatched path or method.
func (h *Handler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	h.sendErrorResponse(w, apperror.NewNotFoundError(apperror.MsgEndpointMissing))
}

// ------------------------------------------------------------------------------------------------------
func (h *Handler) sendErrorResponse(w http.ResponseWriter, err error) {
	statusCode := apperror.GetHTTPStatusCode(err)
	errorResponse := apperror.NewErrorResponse(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if encodeErr := json.NewEncoder(w).Encode(errorResponse); encodeErr != nil {
		h.logger.Error("Failed to encode error response",
			zap.Error(encodeErr),
			zap.NamedError("cause", err),
		)
	}
}

// ------------------------------------------------------------------------------------------------------
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
