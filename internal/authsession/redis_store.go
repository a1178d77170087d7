package authsession

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps login tokens in Redis so multiple processes can share
// one session space. The key TTL mirrors the token expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "authsession:"}
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) Create(ctx context.Context, t Token) error {
	if t.ID == "" || t.UserID == "" {
		return fmt.Errorf("authsession: missing token id or user id")
	}
	ttl := time.Until(t.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("authsession: expires_at must be in the future")
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("authsession: failed to marshal: %w", err)
	}
	return r.client.Set(ctx, r.key(t.ID), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Token, error) {
	val, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	var t Token
	if err := json.Unmarshal([]byte(val), &t); err != nil {
		return nil, fmt.Errorf("authsession: failed to unmarshal: %w", err)
	}
	return &t, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

var _ Store = (*RedisStore)(nil)
