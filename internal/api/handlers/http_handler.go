package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperror "portfolio-api/internal/error"
	"portfolio-api/internal/service"

	"go.uber.org/zap"
)

// maxBodyBytes caps the chat request body at 100 KiB.
const maxBodyBytes = 100 << 10

var errTrailingData = errors.New("unexpected data after JSON body")

// errNonObjectBody rejects top-level strings, numbers and booleans.
var errNonObjectBody = errors.New("JSON body must be an object or array")

// ChatResponse is the body of a successful POST /chat
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ----------------------------------------------------------------------------------------------------------------
func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	req, err := decodeChatRequest(r.Body)
	if err != nil {
		h.logger.Error("Unhandled error", zap.Error(err))
		h.sendErrorResponse(w, h.unhandledError(err))
		return
	}

	reply, err := h.relay.Relay(r.Context(), req)
	if err != nil {
		h.sendErrorResponse(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

// ----------------------------------------------------------------------------------------------------------------
// decodeChatRequest reads exactly one JSON value. An empty, null or array body
// yields a request without a message, which the relay rejects with 400.
func decodeChatRequest(body io.Reader) (*service.ChatRequest, error) {
	dec := json.NewDecoder(body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return &service.ChatRequest{}, nil
		}
		return nil, err
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errTrailingData
	}

	req := &service.ChatRequest{}
	switch bytes.TrimSpace(raw)[0] {
	case '{':
		if err := json.Unmarshal(raw, req); err != nil {
			return nil, err
		}
	case '[', 'n':
	default:
		return nil, errNonObjectBody
	}

	return req, nil
}

// ----------------------------------------------------------------------------------------------------------------
func (h *Handler) unhandledError(err error) *apperror.AppError {
	detail := apperror.MsgSomethingWentWrong
	if h.development {
		detail = err.Error()
	}
	return apperror.NewUnhandledError(detail, err)
}
