package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces session keys in a shared Redis.
const redisKeyPrefix = "scam_session:"

// RedisStore persists sessions in Redis with a per-key TTL, so several
// honeypot instances can share one conversation state. Expiry is
// native: every Set refreshes the TTL and Redis drops idle keys
// itself.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to the Redis named by url
// (redis://host:port/db form).
func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("session: parse redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts), ttl: ttl}, nil
}

// NewRedisStoreFromClient wraps an existing client. Tests use this
// with miniredis.
func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Ping verifies the connection. The bootstrap falls back to the
// in-memory store when this fails.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %q: %v", ErrStoreUnavailable, id, err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("session: decode %q: %w", id, err)
	}
	return &sess, nil
}

func (r *RedisStore) Set(ctx context.Context, id string, sess *Session) error {
	sess.Touch(time.Now().UTC())

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode %q: %w", id, err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+id, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %q: %v", ErrStoreUnavailable, id, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Del(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("%w: delete %q: %v", ErrStoreUnavailable, id, err)
	}
	return n > 0, nil
}

func (r *RedisStore) Exists(ctx context.Context, id string) bool {
	n, err := r.client.Exists(ctx, redisKeyPrefix+id).Result()
	return err == nil && n > 0
}

// CleanupExpired is a no-op: Redis evicts idle keys through the TTL
// set on every write.
func (r *RedisStore) CleanupExpired(ctx context.Context) int { return 0 }

func (r *RedisStore) ActiveIDs(ctx context.Context) []string {
	var (
		ids    []string
		cursor uint64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return ids
		}
		for _, key := range keys {
			ids = append(ids, strings.TrimPrefix(key, redisKeyPrefix))
		}
		cursor = next
		if cursor == 0 {
			return ids
		}
	}
}

func (r *RedisStore) Close() error { return r.client.Close() }
