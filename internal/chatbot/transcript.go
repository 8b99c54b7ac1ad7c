package chatbot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// MaxTranscript caps the messages kept per session; the oldest are dropped.
const MaxTranscript = 200

type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, msgs ...Message) error
	List(ctx context.Context, sessionID string) ([]Message, error)
}

type memoryTranscript struct {
	messages []Message
	lastSeen time.Time
}

// MemoryTranscripts keeps transcripts in process. Sweep evicts idle sessions.
type MemoryTranscripts struct {
	mu       sync.Mutex
	now      func() time.Time
	sessions map[string]*memoryTranscript
}

func NewMemoryTranscripts() *MemoryTranscripts {
	return NewMemoryTranscriptsWithClock(time.Now)
}

func NewMemoryTranscriptsWithClock(now func() time.Time) *MemoryTranscripts {
	if now == nil {
		now = time.Now
	}
	return &MemoryTranscripts{now: now, sessions: make(map[string]*memoryTranscript)}
}

func (m *MemoryTranscripts) Append(_ context.Context, sessionID string, msgs ...Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.sessions[sessionID]
	if !ok {
		t = &memoryTranscript{}
		m.sessions[sessionID] = t
	}
	list := append(t.messages, msgs...)
	if over := len(list) - MaxTranscript; over > 0 {
		list = append([]Message(nil), list[over:]...)
	}
	t.messages = list
	t.lastSeen = m.now()
	return nil
}

func (m *MemoryTranscripts) List(_ context.Context, sessionID string) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.sessions[sessionID]
	if !ok {
		return []Message{}, nil
	}
	t.lastSeen = m.now()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out, nil
}

// Sweep drops transcripts idle for longer than ttl and reports how many were removed.
func (m *MemoryTranscripts) Sweep(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-ttl)
	removed := 0
	for sessionID, t := range m.sessions {
		if t.lastSeen.Before(cutoff) {
			delete(m.sessions, sessionID)
			removed++
		}
	}
	return removed
}

func (m *MemoryTranscripts) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

const transcriptKeyPrefix = "chat:transcript:"

type RedisTranscripts struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisTranscripts(client redis.Cmdable, ttl time.Duration) *RedisTranscripts {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisTranscripts{client: client, ttl: ttl}
}

func (r *RedisTranscripts) Append(ctx context.Context, sessionID string, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(msgs))
	for _, msg := range msgs {
		raw, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("encode chat message: %w", err)
		}
		values = append(values, raw)
	}

	key := transcriptKeyPrefix + sessionID
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		pipe.LTrim(ctx, key, -MaxTranscript, -1)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append transcript %s: %w", sessionID, err)
	}
	return nil
}

func (r *RedisTranscripts) List(ctx context.Context, sessionID string) ([]Message, error) {
	raw, err := r.client.LRange(ctx, transcriptKeyPrefix+sessionID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list transcript %s: %w", sessionID, err)
	}
	out := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("decode chat message: %w", err)
		}
		out = append(out, msg)
	}
	return out, nil
}
