package api

import (
	"blackarrow-backend/internal/api/middleware"
	"blackarrow-backend/internal/chatbot"
	"blackarrow-backend/internal/env"
	"blackarrow-backend/internal/events"
	internaljwt "blackarrow-backend/internal/jwt"
	"blackarrow-backend/internal/popup"
	"blackarrow-backend/internal/queue"
	authsvc "blackarrow-backend/internal/service/auth"
	"blackarrow-backend/internal/store"
	"blackarrow-backend/internal/websocket"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

type RouteRegistrar func(r chi.Router, s *APIServer)

// Deps carries the collaborators route registrars build their endpoints from.
// Each binary fills in only what its routes need.
type Deps struct {
	Store     store.Store
	Publisher events.Publisher
	Popups    *popup.Service
	Chat      *chatbot.Service
	Auth      *authsvc.Service
	Tokens    *internaljwt.Issuer
	Feed      *websocket.Handler
}

type APIServer struct {
	listenAddr          string
	requestQueueManager *queue.RequestQueueManager
	deps                Deps
	routeRegistrars     []RouteRegistrar
	allowedOrigins      []string
	metrics             *metrics
}

func NewAPIServer(listenAddr string, rqm *queue.RequestQueueManager, deps Deps, registrars ...RouteRegistrar) *APIServer {
	if deps.Publisher == nil {
		deps.Publisher = events.Discard{}
	}

	return &APIServer{
		listenAddr:          listenAddr,
		requestQueueManager: rqm,
		deps:                deps,
		routeRegistrars:     registrars,
		allowedOrigins:      splitOrigins(env.Get(env.WebUrl)),
		metrics:             newMetrics(prometheus.DefaultRegisterer, listenAddr, rqm),
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Handler builds the router with every registrar mounted plus /metrics.
func (s *APIServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORS(s.allowedOrigins))

	for _, reg := range s.routeRegistrars {
		reg(r, s)
	}

	r.Handle("/metrics", s.metrics.metricsHandler())

	return s.metrics.instrument(r)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *APIServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.listenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", s.listenAddr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped", "addr", s.listenAddr)
	return nil
}

func (s *APIServer) Deps() Deps {
	return s.deps
}

func (s *APIServer) Store() store.Store {
	return s.deps.Store
}
