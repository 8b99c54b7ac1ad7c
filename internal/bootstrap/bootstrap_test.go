package bootstrap

import (
	"blackarrow-backend/internal/chatbot"
	"blackarrow-backend/internal/env"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRedisOptions(t *testing.T) {
	opts, err := redisOptions("localhost:6379", "secret")
	require.NoError(t, err)
	require.Equal(t, "localhost:6379", opts.Addr)
	require.Equal(t, "secret", opts.Password)

	opts, err = redisOptions("redis://:urlpass@cache.internal:6380/2", "")
	require.NoError(t, err)
	require.Equal(t, "cache.internal:6380", opts.Addr)
	require.Equal(t, "urlpass", opts.Password)
	require.Equal(t, 2, opts.DB)

	_, err = redisOptions("redis://bad host", "")
	require.Error(t, err)
}

func TestKnowledgeBaseFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- question: do you build apps
  keywords: [apps, mobile]
  answer: Yes, iOS and Android.
`), 0o600))

	env.Set(env.KnowledgeBasePath, path)
	t.Cleanup(func() { env.Set(env.KnowledgeBasePath, "") })

	kb, err := KnowledgeBase()
	require.NoError(t, err)
	require.Equal(t, 1, kb.Len())
	require.Equal(t, "Yes, iOS and Android.", kb.Classify("mobile apps please").Answer)
}

func TestSessionTTL(t *testing.T) {
	env.Set(env.SessionTTL, "45m")
	require.Equal(t, 45*time.Minute, SessionTTL())

	env.Set(env.SessionTTL, "nonsense")
	require.Equal(t, 30*time.Minute, SessionTTL())

	env.Set(env.SessionTTL, "30m")
}

func TestIssuerRequiresSecret(t *testing.T) {
	env.Set(env.AdminSecretKey, "")
	_, err := Issuer(nil)
	require.Error(t, err)
}

func TestSweepAllEvictsFromEveryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	transcripts := chatbot.NewMemoryTranscriptsWithClock(clock)
	require.NoError(t, transcripts.Append(ctx, "a", chatbot.Message{ID: "1"}))
	require.NoError(t, transcripts.Append(ctx, "b", chatbot.Message{ID: "2"}))

	now = now.Add(time.Hour)
	require.Equal(t, 2, SweepAll(30*time.Minute, transcripts))
	require.Equal(t, 0, transcripts.Len())
	require.Equal(t, 0, SweepAll(30*time.Minute))
}

func TestRunSweepersStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	transcripts := chatbot.NewMemoryTranscriptsWithClock(func() time.Time { return time.Unix(0, 0) })
	require.NoError(t, transcripts.Append(ctx, "a", chatbot.Message{ID: "1"}))

	done := make(chan struct{})
	go func() {
		RunSweepers(ctx, time.Millisecond, time.Minute, transcripts)
		close(done)
	}()
	// frozen clock: the entry never goes idle
	time.Sleep(5 * time.Millisecond)
	require.Equal(t, 1, transcripts.Len())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunSweepers did not return after cancel")
	}
}
