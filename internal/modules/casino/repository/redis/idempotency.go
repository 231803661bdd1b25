// Package redis backs the idempotency layer with go-redis primitives.
package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/frankieli/casino_engine/pkg/logger"
)

const (
	lockKeyPrefix   = "casino:idem:lock:"
	resultKeyPrefix = "casino:idem:result:"
)

// unlockScript deletes the lock only when the caller still owns it, so a
// release arriving after expiry cannot drop another request's lock.
var unlockScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// IdempotencyStore implements usecase.IdempotencyStore on redis:
// SETNX lock with TTL plus a short-lived cache of the first response.
type IdempotencyStore struct {
	client    *goredis.Client
	lockTTL   time.Duration
	resultTTL time.Duration
}

// NewIdempotencyStore creates the store. lockTTL bounds how long a crashed
// request can block its key; resultTTL bounds the replay window.
func NewIdempotencyStore(client *goredis.Client, lockTTL, resultTTL time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		client:    client,
		lockTTL:   lockTTL,
		resultTTL: resultTTL,
	}
}

// TryLock acquires the in-flight lock for key via SETNX
func (s *IdempotencyStore) TryLock(ctx context.Context, key string) (func(), bool, error) {
	lockKey := lockKeyPrefix + key
	token := newLockToken()

	acquired, err := s.client.SetNX(ctx, lockKey, token, s.lockTTL).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire idempotency lock: %w", err)
	}
	if !acquired {
		return nil, false, nil
	}

	release := func() {
		if err := unlockScript.Run(context.Background(), s.client, []string{lockKey}, token).Err(); err != nil && !errors.Is(err, goredis.Nil) {
			logger.WarnGlobal().Err(err).Str("key", key).Msg("Failed to release idempotency lock")
		}
	}
	return release, true, nil
}

// GetResult returns the cached response for key, or nil on a miss
func (s *IdempotencyStore) GetResult(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, resultKeyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached bet result: %w", err)
	}
	return data, nil
}

// SaveResult caches the response for key with the configured TTL
func (s *IdempotencyStore) SaveResult(ctx context.Context, key string, result []byte) error {
	if err := s.client.Set(ctx, resultKeyPrefix+key, result, s.resultTTL).Err(); err != nil {
		return fmt.Errorf("cache bet result: %w", err)
	}
	return nil
}

func newLockToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
