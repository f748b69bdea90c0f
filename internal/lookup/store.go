package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store shares lookup payloads between processes. Every name has a version
// and payloads are stored per version, so bumping the version invalidates
// every process on its next version check.
type Store interface {
	Version(ctx context.Context, name string) (int64, error)
	Load(ctx context.Context, name string, version int64, dest any) (bool, error)
	Save(ctx context.Context, name string, version int64, value any) error
	Bump(ctx context.Context, name string) (int64, error)
}

// RedisStore keeps lookups in Redis with versioned keys.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a store. A non-positive ttl keeps payloads forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStore{client: client, ttl: ttl}
}

func versionKey(name string) string { return "lookup:" + name + ":version" }

func payloadKey(name string, version int64) string {
	return fmt.Sprintf("lookup:%s:%d", name, version)
}

// Version returns the current version of name, initialising it when missing.
func (s *RedisStore) Version(ctx context.Context, name string) (int64, error) {
	key := versionKey(name)
	ver, err := s.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		if err := s.client.SetNX(ctx, key, 1, 0).Err(); err != nil {
			return 0, err
		}
		return s.client.Get(ctx, key).Int64()
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := s.client.Set(ctx, key, ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

// Load decodes the payload of name at version into dest.
func (s *RedisStore) Load(ctx context.Context, name string, version int64, dest any) (bool, error) {
	payload, err := s.client.Get(ctx, payloadKey(name, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("lookup: decode %s: %w", name, err)
	}
	return true, nil
}

// Save stores the payload of name at version.
func (s *RedisStore) Save(ctx context.Context, name string, version int64, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("lookup: encode %s: %w", name, err)
	}
	return s.client.Set(ctx, payloadKey(name, version), raw, s.ttl).Err()
}

// Bump increments the version of name. Other processes notice it the next
// time they check the version.
func (s *RedisStore) Bump(ctx context.Context, name string) (int64, error) {
	return s.client.Incr(ctx, versionKey(name)).Result()
}
