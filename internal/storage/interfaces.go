package storage

import (
	"context"
	"time"
)

// Usage is the token consumption of one or more completions for a model on a day
type Usage struct {
	Day              string `json:"day"`
	Model            string `json:"model"`
	PromptTokens     int64  `json:"prompt_tokens"`
	CompletionTokens int64  `json:"completion_tokens"`
	Requests         int64  `json:"requests"`
}

// UsageStore defines the interface for the token usage ledger
type UsageStore interface {
	Record(ctx context.Context, u Usage) error
	Totals(ctx context.Context, day string) ([]Usage, error)
	Close() error
}

// DayKey formats t as the ledger's UTC day bucket
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
