package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type ledgerKey struct {
	day   string
	model string
}

// MemoryStore keeps the usage ledger in process memory. Totals are lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	totals map[ledgerKey]Usage
}

// ------------------------------------------------------------------------------------------------------
// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		totals: make(map[ledgerKey]Usage),
	}
}

// ------------------------------------------------------------------------------------------------------
func (s *MemoryStore) Record(_ context.Context, u Usage) error {
	if u.Day == "" || u.Model == "" {
		return errors.New("usage record requires day and model")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := ledgerKey{day: u.Day, model: u.Model}
	cur := s.totals[key]
	cur.Day = u.Day
	cur.Model = u.Model
	cur.PromptTokens += u.PromptTokens
	cur.CompletionTokens += u.CompletionTokens
	cur.Requests += u.Requests
	s.totals[key] = cur
	return nil
}

// ------------------------------------------------------------------------------------------------------
// Totals returns the day's usage sorted by model
func (s *MemoryStore) Totals(_ context.Context, day string) ([]Usage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Usage, 0)
	for key, u := range s.totals {
		if key.day == day {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Model < result[j].Model })
	return result, nil
}

// ------------------------------------------------------------------------------------------------------
func (s *MemoryStore) Close() error {
	return nil
}
