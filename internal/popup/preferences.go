package popup

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

var SystemClock Clock = ClockFunc(time.Now)

// PreferenceStore remembers visitor choices such as "don't show again".
// A zero ttl keeps the value until it is overwritten.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type memoryPreference struct {
	value     string
	expiresAt time.Time
	lastSeen  time.Time
}

type MemoryPreferences struct {
	mu     sync.Mutex
	clock  Clock
	values map[string]memoryPreference
}

func NewMemoryPreferences(clock Clock) *MemoryPreferences {
	if clock == nil {
		clock = SystemClock
	}
	return &MemoryPreferences{
		clock:  clock,
		values: make(map[string]memoryPreference),
	}
}

func (m *MemoryPreferences) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pref, ok := m.values[key]
	if !ok {
		return "", false, nil
	}
	now := m.clock.Now()
	if pref.expired(now) {
		delete(m.values, key)
		return "", false, nil
	}
	pref.lastSeen = now
	m.values[key] = pref
	return pref.value, true, nil
}

func (m *MemoryPreferences) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	pref := memoryPreference{value: value, lastSeen: now}
	if ttl > 0 {
		pref.expiresAt = now.Add(ttl)
	}
	m.values[key] = pref
	return nil
}

func (p memoryPreference) expired(now time.Time) bool {
	return !p.expiresAt.IsZero() && !now.Before(p.expiresAt)
}

// Sweep drops expired values and values nobody has read or written for
// longer than idle, permanent ones included: they belong to sessions that
// are gone. It reports how many were removed.
func (m *MemoryPreferences) Sweep(idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	cutoff := now.Add(-idle)
	removed := 0
	for key, pref := range m.values {
		if pref.expired(now) || pref.lastSeen.Before(cutoff) {
			delete(m.values, key)
			removed++
		}
	}
	return removed
}

func (m *MemoryPreferences) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

type preferenceRedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type RedisPreferences struct {
	client preferenceRedisClient
}

func NewRedisPreferences(client preferenceRedisClient) *RedisPreferences {
	return &RedisPreferences{client: client}
}

func (r *RedisPreferences) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("preference get %s: %w", key, err)
	}
	return val, true, nil
}

func (r *RedisPreferences) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("preference set %s: %w", key, err)
	}
	return nil
}
