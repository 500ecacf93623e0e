package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps issued session tokens until they expire.
// A ttl <= 0 stores the token without expiry in every implementation.
type TokenStore interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
}

// MemoryTokenStore is a process-local TokenStore
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time // zero value: no expiry
	now    func() time.Time
}

// NewMemoryTokenStore creates an empty in-memory store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (s *MemoryTokenStore) Save(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}
	s.tokens[token] = expiresAt
	return nil
}

func (s *MemoryTokenStore) Exists(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.tokens[token]
	if !ok {
		return false, nil
	}
	if !expiresAt.IsZero() && !s.now().Before(expiresAt) {
		delete(s.tokens, token)
		return false, nil
	}
	return true, nil
}

const redisTokenPrefix = "booker:token:"

// RedisTokenStore keeps tokens in Redis with a per-key expiry
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a Redis-backed store
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	if ttl < 0 {
		// go-redis reads -1 as KEEPTTL
		ttl = 0
	}
	return s.client.Set(ctx, redisTokenPrefix+token, "1", ttl).Err()
}

func (s *RedisTokenStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, redisTokenPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
