package service

import (
	"encoding/json"
	"strings"
	"unicode"

	apperror "portfolio-api/internal/error"
)

// ChatRequest represents the incoming chat request.
// Message stays raw so that non-string values can be rejected explicitly.
type ChatRequest struct {
	Message json.RawMessage `json:"message"`
}

// NewChatRequest builds a request carrying a string message
func NewChatRequest(message string) *ChatRequest {
	raw, _ := json.Marshal(message)
	return &ChatRequest{Message: raw}
}

// ------------------------------------------------------------------------------------------------------
// Validate returns the trimmed message. Missing, null, non-string and blank messages are rejected.
func (r *ChatRequest) Validate() (string, error) {
	if r == nil || len(r.Message) == 0 {
		return "", apperror.NewValidationError(MsgInvalidMessage, nil)
	}

	var message string
	if err := json.Unmarshal(r.Message, &message); err != nil {
		return "", apperror.NewValidationError(MsgInvalidMessage, err)
	}

	message = trimText(message)
	if message == "" {
		return "", apperror.NewValidationError(MsgInvalidMessage, nil)
	}

	return message, nil
}

// trimText strips Unicode white space and the byte order mark from both ends
func trimText(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
