package popup

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// fakeSlotRedis runs the claim/release scripts against a map.
type fakeSlotRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeSlotRedis() *fakeSlotRedis {
	return &fakeSlotRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeSlotRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeSlotRedis) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	key := keys[0]
	id := args[0].(string)
	current, held := f.values[key]

	switch script {
	case claimScript:
		if !held || current == id {
			f.values[key] = id
			f.ttls[key] = time.Duration(args[1].(int64)) * time.Millisecond
			return redis.NewCmdResult(int64(1), nil)
		}
		return redis.NewCmdResult(int64(0), nil)
	case releaseScript:
		if held && current == id {
			delete(f.values, key)
			return redis.NewCmdResult(int64(1), nil)
		}
		return redis.NewCmdResult(int64(0), nil)
	}
	return redis.NewCmdResult(nil, redis.Nil)
}

func TestRedisSlotStoreArbitration(t *testing.T) {
	ctx := context.Background()
	client := newFakeSlotRedis()
	store := NewRedisSlotStore(client, 10*time.Minute)

	ok, err := store.RequestShow(ctx, "sess", Newsletter)
	if err != nil || !ok {
		t.Fatalf("expected grant, got %v %v", ok, err)
	}
	if got := client.ttls[slotKeyPrefix+"sess"]; got != 10*time.Minute {
		t.Fatalf("expected slot ttl of 10m, got %s", got)
	}

	ok, err = store.RequestShow(ctx, "sess", ExitIntent)
	if err != nil || ok {
		t.Fatalf("expected refusal, got %v %v", ok, err)
	}

	if err := store.Dismiss(ctx, "sess", ExitIntent); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	active, held, err := store.Active(ctx, "sess")
	if err != nil || !held || active != Newsletter {
		t.Fatalf("expected newsletter to hold, got %q %v %v", active, held, err)
	}

	if err := store.Dismiss(ctx, "sess", Newsletter); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if _, held, _ := store.Active(ctx, "sess"); held {
		t.Fatalf("expected slot to be free")
	}
}
