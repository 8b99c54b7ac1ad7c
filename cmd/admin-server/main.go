package main

import (
	"blackarrow-backend/internal/api"
	"blackarrow-backend/internal/api/router"
	"blackarrow-backend/internal/bootstrap"
	"blackarrow-backend/internal/env"
	"blackarrow-backend/internal/queue"
	authsvc "blackarrow-backend/internal/service/auth"
	"context"
	"log/slog"
	"os"
)

func main() {
	bootstrap.Logger("admin-server")
	ctx, stop := bootstrap.SignalContext()
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("admin-server failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := bootstrap.ResolveSecrets(ctx); err != nil {
		return err
	}
	if err := env.Require(env.AdminEmail, env.AdminSecretKey, env.AdminPasswordHash, env.AuthRedisURL); err != nil {
		return err
	}

	st, closeStore, err := bootstrap.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	authRedis, err := bootstrap.Redis(ctx, env.AuthRedisURL, env.AuthRedisPass)
	if err != nil {
		return err
	}
	defer authRedis.Close()

	issuer, err := bootstrap.Issuer(authRedis)
	if err != nil {
		return err
	}
	auth := authsvc.New(authsvc.Account{
		Email:        env.Get(env.AdminEmail),
		PasswordHash: env.Get(env.AdminPasswordHash),
	}, issuer)

	publisher, closePublisher, err := bootstrap.Publisher(ctx, "admin-server")
	if err != nil {
		return err
	}
	defer closePublisher()

	queueManager := queue.NewRequestQueueManager(50, 8)
	defer queueManager.Shutdown()

	server := api.NewAPIServer(
		env.GetOrDefault(env.ListenAddr, ":8082"),
		queueManager,
		api.Deps{
			Store:     st,
			Publisher: publisher,
			Auth:      auth,
			Tokens:    issuer,
		},
		router.Admin()...,
	)

	return server.Run(ctx)
}
