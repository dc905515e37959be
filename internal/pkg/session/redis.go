package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/hash"
)

const keyPrefix = "session:"

// RedisStore is a Store backed by Redis.
//
// Keys are derived from the HMAC of the token, never the token itself.
type RedisStore struct {
	client *redis.Client
	hmac   hash.Hash
	ttl    time.Duration
}

// NewRedisStore builds a RedisStore with the given token digest hasher and TTL.
func NewRedisStore(client *redis.Client, hmac hash.Hash, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, hmac: hmac, ttl: ttl}
}

func (s *RedisStore) key(token string) (string, error) {
	digest, err := s.hmac.Hash(token)
	if err != nil {
		return "", err
	}
	return keyPrefix + string(digest), nil
}

// Save writes the session under the token digest, resetting its TTL.
func (s *RedisStore) Save(ctx context.Context, token string, sess Session) error {
	key, err := s.key(token)
	if err != nil {
		return err
	}

	value, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key, value, s.ttl).Err()
}

// Get returns the session for the token, or goerror.ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	key, err := s.key(token)
	if err != nil {
		return nil, err
	}

	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(value, &sess); err != nil {
		return nil, err
	}

	return &sess, nil
}

// Delete removes the session for the token.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	key, err := s.key(token)
	if err != nil {
		return err
	}

	return s.client.Del(ctx, key).Err()
}
