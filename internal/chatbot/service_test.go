package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewServiceWithClock(NewKnowledgeBase(servicesTable()), NewMemoryTranscripts(), func() time.Time { return now })
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("msg-%d", n)
	}
	return svc
}

func TestServiceSendRecordsExchange(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	ex, err := svc.Send(ctx, "sess", "  tell me about your services ")
	require.NoError(t, err)
	require.Equal(t, "tell me about your services", ex.User.Text)
	require.Equal(t, SenderUser, ex.User.Sender)
	require.Equal(t, servicesAnswer, ex.Bot.Text)
	require.Equal(t, SenderBot, ex.Bot.Sender)
	require.Equal(t, OutcomeKeyword, ex.Outcome)

	_, err = svc.Send(ctx, "sess", "bye")
	require.NoError(t, err)

	history, err := svc.History(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, history, 4)
	require.Equal(t, []string{"msg-1", "msg-2", "msg-3", "msg-4"}, []string{history[0].ID, history[1].ID, history[2].ID, history[3].ID})
	require.Equal(t, GoodbyeResponse, history[3].Text)

	other, err := svc.History(ctx, "other")
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestServiceSendValidation(t *testing.T) {
	svc := newTestService()
	var svcErr *Error

	_, err := svc.Send(context.Background(), "sess", "   ")
	require.True(t, errors.As(err, &svcErr))
	require.Equal(t, ErrorCodeValidation, svcErr.Code)

	_, err = svc.Send(context.Background(), "", "hello")
	require.True(t, errors.As(err, &svcErr))

	_, err = svc.Send(context.Background(), "sess", strings.Repeat("a", MaxMessageLength+1))
	require.True(t, errors.As(err, &svcErr))
}

func TestMemoryTranscriptsCap(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTranscripts()
	for i := 0; i < MaxTranscript+5; i++ {
		require.NoError(t, store.Append(ctx, "sess", Message{ID: fmt.Sprintf("%d", i)}))
	}
	msgs, err := store.List(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, msgs, MaxTranscript)
	require.Equal(t, "5", msgs[0].ID)
}

func TestMemoryTranscriptsSweepIdleSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryTranscriptsWithClock(func() time.Time { return now })

	require.NoError(t, store.Append(ctx, "left", Message{ID: "1"}))
	require.NoError(t, store.Append(ctx, "reading", Message{ID: "2"}))

	now = now.Add(20 * time.Minute)
	_, err := store.List(ctx, "reading")
	require.NoError(t, err)

	now = now.Add(15 * time.Minute)
	require.Equal(t, 1, store.Sweep(30*time.Minute))
	require.Equal(t, 1, store.Len())

	msgs, err := store.List(ctx, "left")
	require.NoError(t, err)
	require.Empty(t, msgs)
	require.Equal(t, 1, store.Len(), "listing an unknown session must not create it")
}
