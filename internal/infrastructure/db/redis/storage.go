package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Storage is a client profile's key-value store kept in Redis, so several
// machines can share one session.
// Key format: fittrack:<profile>:<key>
type Storage struct {
	client  *redis.Client
	profile string
}

// NewStorage scopes client to profile.
func NewStorage(client *redis.Client, profile string) *Storage {
	return &Storage{client: client, profile: profile}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("storage set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("storage delete %s: %w", key, err)
	}
	return nil
}

func (s *Storage) key(k string) string {
	return fmt.Sprintf("fittrack:%s:%s", s.profile, k)
}
