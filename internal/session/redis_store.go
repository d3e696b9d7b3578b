package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quantum-banking/webapp/internal/backend"
)

const keyPrefix = "session:v1:"

// RedisStore keeps session bundles in Redis with a sliding TTL. Values are
// sealed with the session secret before being written.
type RedisStore struct {
	cache *redis.Client
	seal  sealer
	ttl   time.Duration
}

// NewRedisStore builds a Redis-backed session store.
func NewRedisStore(cache *redis.Client, secret string, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, seal: newSealer(secret), ttl: ttl}
}

func tokenKey(id string) string { return keyPrefix + id + ":token" }
func userKey(id string) string  { return keyPrefix + id + ":user" }

// SetToken stores the bearer token for a session.
func (s *RedisStore) SetToken(ctx context.Context, id, token string) error {
	sealed, err := s.seal.seal([]byte(token))
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, tokenKey(id), sealed, s.ttl).Err(); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when the session is unknown.
func (s *RedisStore) Token(ctx context.Context, id string) (string, error) {
	sealed, err := s.cache.Get(ctx, tokenKey(id)).Bytes()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	plaintext, err := s.seal.open(sealed)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// SetUser stores the JSON-serialized user profile for a session.
func (s *RedisStore) SetUser(ctx context.Context, id string, user *backend.UserProfile) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	sealed, err := s.seal.seal(payload)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, userKey(id), sealed, s.ttl).Err(); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	return nil
}

// User returns the stored profile, or nil when none is present.
func (s *RedisStore) User(ctx context.Context, id string) (*backend.UserProfile, error) {
	sealed, err := s.cache.Get(ctx, userKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	payload, err := s.seal.open(sealed)
	if err != nil {
		return nil, err
	}
	var user backend.UserProfile
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &user, nil
}

// Clear removes both session keys.
func (s *RedisStore) Clear(ctx context.Context, id string) error {
	if err := s.cache.Del(ctx, tokenKey(id), userKey(id)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
