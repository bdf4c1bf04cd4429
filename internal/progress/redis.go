package progress

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/p-n-ai/word-forge/internal/platform/cache"
)

// RedisStore keeps each value under <prefix><learner>:<key>.
type RedisStore struct {
	cache *cache.Cache
}

// NewRedisStore creates a store on an open cache.
func NewRedisStore(c *cache.Cache) *RedisStore {
	return &RedisStore{cache: c}
}

var storedKeys = []string{KeyCurrentWeek, KeyShowL1Support, KeyReviewItems}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, learnerID string) (State, error) {
	keys := make([]string, len(storedKeys))
	for i, k := range storedKeys {
		keys[i] = s.cache.Key(learnerID, k)
	}

	vals, err := s.cache.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return State{}, fmt.Errorf("loading state for %s: %w", learnerID, err)
	}

	raw := make(map[string]string, len(storedKeys))
	for i, v := range vals {
		if str, ok := v.(string); ok {
			raw[storedKeys[i]] = str
		}
	}
	return Decode(learnerID, raw), nil
}

// Save implements Store. All three values are written in one transaction.
func (s *RedisStore) Save(ctx context.Context, learnerID string, st State) error {
	if learnerID == "" {
		return fmt.Errorf("learner id is required")
	}
	values, err := Encode(st)
	if err != nil {
		return err
	}

	_, err = s.cache.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range storedKeys {
			pipe.Set(ctx, s.cache.Key(learnerID, k), values[k], 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving state for %s: %w", learnerID, err)
	}
	return nil
}
