package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const usageTTL = 30 * 24 * time.Hour

// RedisStore keeps the usage ledger in Redis hashes, one per day and model
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis store
func NewRedisStore(addr, password string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// Test connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: rdb}, nil
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Record increments the day's counters for the model and indexes the model under the day
func (r *RedisStore) Record(ctx context.Context, u Usage) error {
	if u.Day == "" || u.Model == "" {
		return errors.New("usage record requires day and model")
	}

	key := usageKey(u.Day, u.Model)
	index := modelsKey(u.Day)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, "prompt_tokens", u.PromptTokens)
		pipe.HIncrBy(ctx, key, "completion_tokens", u.CompletionTokens)
		pipe.HIncrBy(ctx, key, "requests", u.Requests)
		pipe.Expire(ctx, key, usageTTL)
		pipe.SAdd(ctx, index, u.Model)
		pipe.Expire(ctx, index, usageTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis usage record: %w", err)
	}
	return nil
}

// Totals returns the day's usage sorted by model
func (r *RedisStore) Totals(ctx context.Context, day string) ([]Usage, error) {
	models, err := r.client.SMembers(ctx, modelsKey(day)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis usage models: %w", err)
	}
	sort.Strings(models)

	result := make([]Usage, 0, len(models))
	for _, model := range models {
		fields, err := r.client.HGetAll(ctx, usageKey(day, model)).Result()
		if err != nil {
			return nil, fmt.Errorf("redis usage totals: %w", err)
		}
		u, err := usageFromHash(day, model, fields)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, nil
}

func usageKey(day, model string) string {
	return fmt.Sprintf("usage:%s:%s", day, model)
}

func modelsKey(day string) string {
	return fmt.Sprintf("usage:%s:models", day)
}

func usageFromHash(day, model string, fields map[string]string) (Usage, error) {
	u := Usage{Day: day, Model: model}
	targets := map[string]*int64{
		"prompt_tokens":     &u.PromptTokens,
		"completion_tokens": &u.CompletionTokens,
		"requests":          &u.Requests,
	}
	for name, dst := range targets {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Usage{}, fmt.Errorf("redis usage field %s: %w", name, err)
		}
		*dst = n
	}
	return u, nil
}
