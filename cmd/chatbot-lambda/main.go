package main

import (
	"blackarrow-backend/internal/bootstrap"
	"blackarrow-backend/internal/chatbot"
	"blackarrow-backend/internal/chatlambda"
	"blackarrow-backend/internal/env"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	bootstrap.Logger("chatbot-lambda")
	ctx := context.Background()

	kb, err := bootstrap.KnowledgeBase()
	if err != nil {
		slog.Error("load knowledge base", "err", err)
		os.Exit(1)
	}

	var transcripts chatbot.TranscriptStore
	if env.Get(env.SessionRedisURL) != "" {
		client, err := bootstrap.Redis(ctx, env.SessionRedisURL, env.SessionRedisPass)
		if err != nil {
			slog.Error("connect session redis", "err", err)
			os.Exit(1)
		}
		transcripts = chatbot.NewRedisTranscripts(client, bootstrap.SessionTTL())
	} else {
		// warm invocations share the container, cold starts begin empty
		slog.Warn("SESSION_REDIS_URL not set; transcripts are per container")
		memory := chatbot.NewMemoryTranscripts()
		go bootstrap.RunSweepers(ctx, time.Minute, bootstrap.SessionTTL(), memory)
		transcripts = memory
	}

	h, err := chatlambda.NewHandler(chatbot.NewService(kb, transcripts))
	if err != nil {
		slog.Error("init handler", "err", err)
		os.Exit(1)
	}
	lambda.Start(h.Handle)
}
