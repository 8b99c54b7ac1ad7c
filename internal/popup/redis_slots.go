package popup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const slotKeyPrefix = "popup:slot:"

// claimScript sets the slot when free and refreshes it when the caller already holds it.
const claimScript = `
local current = redis.call('GET', KEYS[1])
if not current then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
	return 1
end
if current == ARGV[1] then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
	return 1
end
return 0
`

// releaseScript deletes the slot only when ARGV[1] holds it.
const releaseScript = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`

type slotRedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisSlotStore shares popup slots across server instances. Each session
// owns one key that expires with the session.
type RedisSlotStore struct {
	client slotRedisClient
	ttl    time.Duration
}

func NewRedisSlotStore(client slotRedisClient, ttl time.Duration) *RedisSlotStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisSlotStore{client: client, ttl: ttl}
}

func slotKey(sessionID string) string {
	return slotKeyPrefix + sessionID
}

func (s *RedisSlotStore) RequestShow(ctx context.Context, sessionID string, id ID) (bool, error) {
	res, err := s.client.Eval(ctx, claimScript, []string{slotKey(sessionID)}, string(id), s.ttl.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("popup slot claim %s: %w", sessionID, err)
	}
	return res == 1, nil
}

func (s *RedisSlotStore) Dismiss(ctx context.Context, sessionID string, id ID) error {
	if err := s.client.Eval(ctx, releaseScript, []string{slotKey(sessionID)}, string(id)).Err(); err != nil {
		return fmt.Errorf("popup slot release %s: %w", sessionID, err)
	}
	return nil
}

func (s *RedisSlotStore) Active(ctx context.Context, sessionID string) (ID, bool, error) {
	val, err := s.client.Get(ctx, slotKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("popup slot get %s: %w", sessionID, err)
	}
	return ID(val), true, nil
}
