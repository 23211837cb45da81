package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestUsageKeys(t *testing.T) {
	require.Equal(t, "usage:2026-10-19:gpt-4o-mini", usageKey("2026-10-19", "gpt-4o-mini"))
	require.Equal(t, "usage:2026-10-19:models", modelsKey("2026-10-19"))
}

func TestUsageFromHash(t *testing.T) {
	u, err := usageFromHash("2026-10-19", "gpt-4o-mini", map[string]string{
		"prompt_tokens":     "150",
		"completion_tokens": "25",
		"requests":          "2",
	})
	require.NoError(t, err)
	require.Equal(t, Usage{Day: "2026-10-19", Model: "gpt-4o-mini", PromptTokens: 150, CompletionTokens: 25, Requests: 2}, u)
}

func TestUsageFromHash_MissingFields(t *testing.T) {
	u, err := usageFromHash("2026-10-19", "m", map[string]string{"requests": "1"})
	require.NoError(t, err)
	require.Equal(t, int64(1), u.Requests)
	require.Zero(t, u.PromptTokens)
}

func TestUsageFromHash_Malformed(t *testing.T) {
	_, err := usageFromHash("2026-10-19", "m", map[string]string{"prompt_tokens": "many"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "prompt_tokens")
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	_, err := NewRedisStore("127.0.0.1:1", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to connect to Redis")
}

func TestRedisStore_RecordAndTotals(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, Usage{Day: "2026-10-19", Model: "gpt-4o-mini", PromptTokens: 100, CompletionTokens: 20, Requests: 1}))
	require.NoError(t, store.Record(ctx, Usage{Day: "2026-10-19", Model: "gpt-4o-mini", PromptTokens: 50, CompletionTokens: 5, Requests: 1}))
	require.NoError(t, store.Record(ctx, Usage{Day: "2026-10-19", Model: "gpt-4o", PromptTokens: 7, CompletionTokens: 3, Requests: 1}))
	require.NoError(t, store.Record(ctx, Usage{Day: "2026-10-20", Model: "gpt-4o-mini", PromptTokens: 1, CompletionTokens: 1, Requests: 1}))

	require.Equal(t, "150", mr.HGet("usage:2026-10-19:gpt-4o-mini", "prompt_tokens"))
	require.Equal(t, "25", mr.HGet("usage:2026-10-19:gpt-4o-mini", "completion_tokens"))
	require.Equal(t, "2", mr.HGet("usage:2026-10-19:gpt-4o-mini", "requests"))

	models, err := mr.SMembers("usage:2026-10-19:models")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"gpt-4o", "gpt-4o-mini"}, models)

	totals, err := store.Totals(ctx, "2026-10-19")
	require.NoError(t, err)
	require.Equal(t, []Usage{
		{Day: "2026-10-19", Model: "gpt-4o", PromptTokens: 7, CompletionTokens: 3, Requests: 1},
		{Day: "2026-10-19", Model: "gpt-4o-mini", PromptTokens: 150, CompletionTokens: 25, Requests: 2},
	}, totals)
}

func TestRedisStore_RecordSetsTTL(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, Usage{Day: "2026-10-19", Model: "gpt-4o-mini", PromptTokens: 1, Requests: 1}))

	require.Equal(t, usageTTL, mr.TTL("usage:2026-10-19:gpt-4o-mini"))
	require.Equal(t, usageTTL, mr.TTL("usage:2026-10-19:models"))

	mr.FastForward(usageTTL + 1)

	totals, err := store.Totals(ctx, "2026-10-19")
	require.NoError(t, err)
	require.Empty(t, totals)
}

func TestRedisStore_RecordRequiresKey(t *testing.T) {
	store, _ := newTestRedisStore(t)

	require.Error(t, store.Record(context.Background(), Usage{Model: "gpt-4o-mini"}))
	require.Error(t, store.Record(context.Background(), Usage{Day: "2026-10-19"}))
}

func TestRedisStore_TotalsEmptyDay(t *testing.T) {
	store, _ := newTestRedisStore(t)

	totals, err := store.Totals(context.Background(), "2026-01-01")
	require.NoError(t, err)
	require.Empty(t, totals)
}

func TestRedisStore_TotalsMalformedHash(t *testing.T) {
	store, mr := newTestRedisStore(t)

	_, err := mr.SAdd("usage:2026-10-19:models", "gpt-4o-mini")
	require.NoError(t, err)
	mr.HSet("usage:2026-10-19:gpt-4o-mini", "requests", "lots")

	_, err = store.Totals(context.Background(), "2026-10-19")
	require.Error(t, err)
	require.Contains(t, err.Error(), "requests")
}
