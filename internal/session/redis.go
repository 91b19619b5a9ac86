package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/monocle-dev/catalog/pkg/e"
	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) Load(ctx context.Context, key string, dest interface{}) error {
	raw, err := s.client.Get(ctx, key).Bytes()

	if errors.Is(err, redis.Nil) {
		return ErrMissing
	}

	if err != nil {
		return e.Wrap("load session", err)
	}

	return json.Unmarshal(raw, dest)
}

func (s *RedisStore) Save(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)

	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return e.Wrap("save session", err)
	}

	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return e.Wrap("delete session", err)
	}

	return nil
}
