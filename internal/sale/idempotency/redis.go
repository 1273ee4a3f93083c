package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-retail-service/pkg/cache"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "idempotency:sale:"
	pending   = "pending"

	// pendingTTL frees a key whose owner died before Complete or Release.
	pendingTTL = time.Minute
)

// RedisStore keeps idempotency keys in Redis. A key holds "pending" while its sale runs and the
// sale id once committed. Only committed keys live for the full ttl.
type RedisStore struct {
	client *cache.RedisClient
	ttl    time.Duration
}

func NewRedisStore(client *cache.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) claimTTL() time.Duration {
	if s.ttl < pendingTTL {
		return s.ttl
	}
	return pendingTTL
}

func (s *RedisStore) Claim(ctx context.Context, key string) (string, bool, error) {
	ok, err := s.client.AcquireLock(ctx, keyPrefix+key, pending, s.claimTTL())
	if err != nil {
		return "", false, err
	}
	if ok {
		return "", true, nil
	}

	val, err := s.client.Client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET, try once more
		ok, err = s.client.AcquireLock(ctx, keyPrefix+key, pending, s.claimTTL())
		if err != nil {
			return "", false, err
		}
		return "", ok, nil
	}
	if err != nil {
		return "", false, err
	}
	if val == pending {
		return "", false, nil
	}
	return val, false, nil
}

func (s *RedisStore) Complete(ctx context.Context, key, saleID string) error {
	return s.client.Client.Set(ctx, keyPrefix+key, saleID, s.ttl).Err()
}

// Release frees a key whose sale failed. A completed key is left alone.
func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.client.ReleaseLock(ctx, keyPrefix+key, pending)
}
