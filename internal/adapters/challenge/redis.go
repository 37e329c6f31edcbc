package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arrendo/arrendo-ui/internal/ports"
)

// The challenge lives under a fixed key: the application is single-user and
// at most one provider flow is outstanding at a time.
const defaultKey = "arrendo:oauth_state"

// RedisStore keeps the pending challenge in Redis with a TTL. Unlike the
// memory store it survives a process restart that happens while the user is
// away at the provider's login page.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed challenge store.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisStore{client: client, key: defaultKey, ttl: ttl}
}

// Put stores the state value, replacing any previous challenge.
func (s *RedisStore) Put(ctx context.Context, state string) error {
	if err := s.client.Set(ctx, s.key, state, s.ttl).Err(); err != nil {
		return fmt.Errorf("store oauth challenge: %w", err)
	}
	return nil
}

// Take returns the stored state and deletes it atomically (GETDEL), so a
// challenge can never be consumed twice.
func (s *RedisStore) Take(ctx context.Context) (string, error) {
	state, err := s.client.GetDel(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrNoChallenge
		}
		return "", fmt.Errorf("take oauth challenge: %w", err)
	}
	if state == "" {
		return "", ports.ErrNoChallenge
	}
	return state, nil
}
