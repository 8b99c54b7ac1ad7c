package websocket

import (
	"blackarrow-backend/internal/env"
	internaljwt "blackarrow-backend/internal/jwt"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	jwtlib "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type tokenParser interface {
	ParseToken(tokenString string, role internaljwt.Role) (jwtlib.MapClaims, error)
}

type subscriber interface {
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// Handler upgrades admin connections into the feed room and relays the
// Redis channel of the same name into it.
type Handler struct {
	hub            *Hub
	redisClient    subscriber
	tokens         tokenParser
	room           string
	allowedOrigins map[string]bool
	upgrader       websocket.Upgrader
	now            func() time.Time
}

func NewHandler(hub *Hub, client subscriber, tokens tokenParser, room string) *Handler {
	h := &Handler{
		hub:            hub,
		redisClient:    client,
		tokens:         tokens,
		room:           room,
		allowedOrigins: make(map[string]bool),
		now:            time.Now,
	}
	for _, o := range strings.Split(env.Get(env.WebUrl), ",") {
		if o = strings.TrimSpace(o); o != "" {
			h.allowedOrigins[o] = true
		}
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin lets non-browser clients through; browsers must come from the site.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || h.allowedOrigins[origin]
}

func feedToken(r *http.Request) string {
	if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
		return token
	}
	header := r.Header.Get("Authorization")
	if rest, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(rest)
	}
	return ""
}

func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	// browsers cannot set headers on websocket requests, hence ?token=
	claims, err := h.tokens.ParseToken(feedToken(r), internaljwt.RoleAdmin)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		slog.Debug("websocket upgrade failed", "err", err)
		return
	}

	userID, _ := claims["id"].(string)
	cl := &WSClient{
		Conn:    conn,
		Message: make(chan *WSMessage, 16),
		ID:      uuid.NewString(),
		RoomID:  h.room,
		UserID:  userID,
		done:    make(chan struct{}),
	}

	if !h.hub.register(cl) {
		conn.Close()
		return
	}
	slog.Info("websocket client connected", "client", cl.ID, "room", cl.RoomID, "user", userID)

	go cl.keepAlive()
	go cl.writeMessage()
	go cl.readMessage(h.hub)
}

func (h *Handler) message(payload string) *WSMessage {
	content := json.RawMessage(payload)
	if !json.Valid(content) {
		quoted, _ := json.Marshal(payload)
		content = quoted
	}
	return &WSMessage{
		Content:   content,
		RoomID:    h.room,
		Timestamp: h.now().Unix(),
	}
}

// Relay forwards every message on the room's Redis channel until ctx is cancelled.
func (h *Handler) Relay(ctx context.Context) error {
	sub := h.redisClient.Subscribe(ctx, h.room)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", h.room, err)
	}
	slog.Info("relaying redis channel", "channel", h.room)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if !h.hub.Publish(ctx, h.message(msg.Payload)) {
				return nil
			}
		}
	}
}
