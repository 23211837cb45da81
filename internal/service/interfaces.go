package service

import "context"

// RelayService defines the interface for chat relay operations
type RelayService interface {
	Relay(ctx context.Context, req *ChatRequest) (string, error)
	ProviderConfigured() bool
}
