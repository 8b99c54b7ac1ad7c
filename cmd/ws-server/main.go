package main

import (
	"blackarrow-backend/internal/api"
	"blackarrow-backend/internal/api/router"
	"blackarrow-backend/internal/bootstrap"
	"blackarrow-backend/internal/env"
	"blackarrow-backend/internal/events"
	"blackarrow-backend/internal/queue"
	"blackarrow-backend/internal/websocket"
	"context"
	"log/slog"
	"os"
	"time"
)

func main() {
	bootstrap.Logger("ws-server")
	ctx, stop := bootstrap.SignalContext()
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("ws-server failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := bootstrap.ResolveSecrets(ctx); err != nil {
		return err
	}
	if err := env.Require(env.AdminSecretKey, env.FeedRedisURL); err != nil {
		return err
	}

	feedRedis, err := bootstrap.Redis(ctx, env.FeedRedisURL, env.FeedRedisPass)
	if err != nil {
		return err
	}
	defer feedRedis.Close()

	// only verifies access tokens, so no refresh store is needed
	issuer, err := bootstrap.Issuer(nil)
	if err != nil {
		return err
	}

	hub := websocket.NewHub(events.LeadFeedChannel)
	go hub.Run(ctx)

	handler := websocket.NewHandler(hub, feedRedis, issuer, events.LeadFeedChannel)
	go relay(ctx, handler)

	queueManager := queue.NewRequestQueueManager(10, 4)
	defer queueManager.Shutdown()

	server := api.NewAPIServer(
		env.GetOrDefault(env.ListenAddr, ":8083"),
		queueManager,
		api.Deps{Feed: handler},
		router.WS()...,
	)

	return server.Run(ctx)
}

// relay keeps the Redis subscription alive across connection drops.
func relay(ctx context.Context, handler *websocket.Handler) {
	for {
		if err := handler.Relay(ctx); err != nil {
			slog.Error("lead feed relay stopped", "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}
