// Package bootstrap wires configuration into the collaborators the binaries share.
package bootstrap

import (
	"blackarrow-backend/internal/chatbot"
	"blackarrow-backend/internal/database"
	"blackarrow-backend/internal/env"
	"blackarrow-backend/internal/events"
	"blackarrow-backend/internal/integrations/paramstore"
	internaljwt "blackarrow-backend/internal/jwt"
	"blackarrow-backend/internal/store"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-redis/redis/v8"
)

// secretKeys are looked up in Parameter Store when PARAM_PREFIX is set.
var secretKeys = []string{env.AdminSecretKey, env.AdminPasswordHash, env.DatabaseURL, env.RabbitMQURL}

// Logger installs a JSON slog handler as the process default.
func Logger(service string) *slog.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).With("service", service)
	slog.SetDefault(logger)
	return logger
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// ResolveSecrets fills unset secret keys from SSM under PARAM_PREFIX.
func ResolveSecrets(ctx context.Context) error {
	prefix := env.Get(env.ParamPrefix)
	if prefix == "" {
		return nil
	}

	cfg, err := database.LoadAWSConfig(ctx, env.Get(env.AWSRegion), env.Get(env.AWSID), env.Get(env.AWSSecret), env.Get(env.AWSToken))
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	client, err := paramstore.New(ssm.NewFromConfig(cfg))
	if err != nil {
		return err
	}
	if err := paramstore.Resolve(ctx, client, prefix, env.Get, env.Set, secretKeys...); err != nil {
		return fmt.Errorf("resolve secrets: %w", err)
	}
	return nil
}

// OpenStore opens the STORE_DRIVER store; the returned func releases it.
func OpenStore(ctx context.Context) (store.Store, func(), error) {
	st, err := store.Open(ctx, env.Get(env.StoreDriver))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {}
	if c, ok := st.(io.Closer); ok {
		closeFn = func() {
			if err := c.Close(); err != nil {
				slog.Warn("close store", "err", err)
			}
		}
	}
	return st, closeFn, nil
}

func redisOptions(addr, pass string) (*redis.Options, error) {
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		if pass != "" {
			opts.Password = pass
		}
		return opts, nil
	}
	return &redis.Options{Addr: addr, Password: pass, DB: 0}, nil
}

// Redis connects to the instance configured under urlKey/passKey and pings it.
func Redis(ctx context.Context, urlKey, passKey string) (*redis.Client, error) {
	addr := env.Get(urlKey)
	if addr == "" {
		return nil, fmt.Errorf("%s is not set", urlKey)
	}
	opts, err := redisOptions(addr, env.Get(passKey))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", urlKey, err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", urlKey, err)
	}
	return client, nil
}

// Issuer signs admin tokens with ADMIN_SECRET and keeps refresh tokens in refresh.
func Issuer(refresh *redis.Client) (*internaljwt.Issuer, error) {
	secret := env.Get(env.AdminSecretKey)
	if secret == "" {
		return nil, errors.New("ADMIN_SECRET is not set")
	}
	return internaljwt.NewIssuer(map[internaljwt.Role]string{internaljwt.RoleAdmin: secret}, refresh), nil
}

// Publisher fans lead events out to the feed channel and RabbitMQ, whichever
// are configured. Without either, events are dropped.
func Publisher(ctx context.Context, producer string) (events.Publisher, func(), error) {
	var (
		pubs    events.Multi
		closers []func()
	)

	if env.Get(env.FeedRedisURL) != "" {
		client, err := Redis(ctx, env.FeedRedisURL, env.FeedRedisPass)
		if err != nil {
			return nil, nil, err
		}
		pubs = append(pubs, events.NewRedisPublisher(client, events.LeadFeedChannel))
		closers = append(closers, func() { client.Close() })
	}

	if url := env.Get(env.RabbitMQURL); url != "" {
		amqpPub, err := events.DialAMQP(url, events.DefaultExchange, producer)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, nil, err
		}
		pubs = append(pubs, amqpPub)
		closers = append(closers, func() { amqpPub.Close() })
	}

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	if len(pubs) == 0 {
		slog.Warn("no event sinks configured; lead events are dropped")
		return events.Discard{}, closeAll, nil
	}
	return pubs, closeAll, nil
}

// KnowledgeBase loads KNOWLEDGE_BASE_PATH, falling back to the embedded table.
func KnowledgeBase() (*chatbot.KnowledgeBase, error) {
	path := env.Get(env.KnowledgeBasePath)
	if path == "" {
		return chatbot.DefaultKnowledgeBase(), nil
	}
	kb, err := chatbot.LoadKnowledgeBase(path)
	if err != nil {
		return nil, err
	}
	for _, problem := range kb.Lint() {
		slog.Warn("knowledge base", "problem", problem, "path", path)
	}
	return kb, nil
}

// SessionTTL is how long idle visitor state (popup slot, transcript) lives.
func SessionTTL() time.Duration {
	ttl, err := time.ParseDuration(env.Get(env.SessionTTL))
	if err != nil || ttl <= 0 {
		return 30 * time.Minute
	}
	return ttl
}

// Sweeper evicts in-process session state idle for longer than ttl.
type Sweeper interface {
	Sweep(ttl time.Duration) int
}

// SweepAll runs each sweeper once and reports the total evicted.
func SweepAll(ttl time.Duration, sweepers ...Sweeper) int {
	removed := 0
	for _, s := range sweepers {
		removed += s.Sweep(ttl)
	}
	return removed
}

// RunSweepers calls SweepAll every interval until ctx is done.
func RunSweepers(ctx context.Context, interval, ttl time.Duration, sweepers ...Sweeper) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := SweepAll(ttl, sweepers...); n > 0 {
				slog.Debug("evicted idle session state", "count", n)
			}
		}
	}
}
