package main

import (
	"blackarrow-backend/internal/api"
	"blackarrow-backend/internal/api/router"
	"blackarrow-backend/internal/bootstrap"
	"blackarrow-backend/internal/chatbot"
	"blackarrow-backend/internal/env"
	"blackarrow-backend/internal/popup"
	"blackarrow-backend/internal/queue"
	"context"
	"log/slog"
	"os"
	"time"
)

func main() {
	bootstrap.Logger("public-server")
	ctx, stop := bootstrap.SignalContext()
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("public-server failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := bootstrap.ResolveSecrets(ctx); err != nil {
		return err
	}

	st, closeStore, err := bootstrap.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	kb, err := bootstrap.KnowledgeBase()
	if err != nil {
		return err
	}

	ttl := bootstrap.SessionTTL()
	var (
		popups *popup.Service
		chat   *chatbot.Service
	)
	if env.Get(env.SessionRedisURL) != "" {
		sessions, err := bootstrap.Redis(ctx, env.SessionRedisURL, env.SessionRedisPass)
		if err != nil {
			return err
		}
		defer sessions.Close()
		popups = popup.NewService(popup.NewRedisSlotStore(sessions, ttl), popup.NewRedisPreferences(sessions), popup.SystemClock)
		chat = chatbot.NewService(kb, chatbot.NewRedisTranscripts(sessions, 0))
	} else {
		slog.Warn("SESSION_REDIS_URL not set; popup slots and transcripts live in this process only")
		registry := popup.NewRegistry()
		prefs := popup.NewMemoryPreferences(popup.SystemClock)
		transcripts := chatbot.NewMemoryTranscripts()
		go bootstrap.RunSweepers(ctx, time.Minute, ttl, registry, prefs, transcripts)
		popups = popup.NewService(registry, prefs, popup.SystemClock)
		chat = chatbot.NewService(kb, transcripts)
	}

	publisher, closePublisher, err := bootstrap.Publisher(ctx, "public-server")
	if err != nil {
		return err
	}
	defer closePublisher()

	queueManager := queue.NewRequestQueueManager(100, 16)
	defer queueManager.Shutdown()

	server := api.NewAPIServer(
		env.GetOrDefault(env.ListenAddr, ":8081"),
		queueManager,
		api.Deps{
			Store:     st,
			Publisher: publisher,
			Popups:    popups,
			Chat:      chat,
		},
		router.Public()...,
	)

	return server.Run(ctx)
}
