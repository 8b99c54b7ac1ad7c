package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pingInterval = 30 * time.Second
	writeTimeout = 10 * time.Second
	readLimit    = 4 * 1024
)

type WSClient struct {
	Conn     *websocket.Conn
	Message  chan *WSMessage
	ID       string
	RoomID   string
	UserID   string
	done     chan struct{} // closed when the read loop ends
	mu       sync.Mutex    // guards Conn writes
	isClosed bool
}

func (cl *WSClient) write(fn func() error) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.isClosed {
		return websocket.ErrCloseSent
	}
	_ = cl.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return fn()
}

func (cl *WSClient) keepAlive() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			return
		case <-ticker.C:
			if err := cl.write(func() error { return cl.Conn.WriteMessage(websocket.PingMessage, nil) }); err != nil {
				slog.Debug("websocket ping failed", "client", cl.ID, "err", err)
				return
			}
		}
	}
}

func (cl *WSClient) writeMessage() {
	defer func() {
		cl.mu.Lock()
		cl.isClosed = true
		cl.Conn.Close()
		cl.mu.Unlock()
	}()

	for {
		select {
		case <-cl.done:
			return
		case msg, ok := <-cl.Message:
			if !ok {
				_ = cl.write(func() error {
					return cl.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				})
				return
			}
			if err := cl.write(func() error { return cl.Conn.WriteJSON(msg) }); err != nil {
				slog.Warn("websocket send failed", "client", cl.ID, "err", err)
				return
			}
		}
	}
}

// readMessage drains control frames until the peer goes away. The feed is
// one-way, so data frames from the client are ignored.
func (cl *WSClient) readMessage(hub *Hub) {
	defer func() {
		close(cl.done)
		hub.unregister(cl)
		slog.Info("websocket client disconnected", "client", cl.ID, "room", cl.RoomID, "user", cl.UserID)
	}()

	cl.Conn.SetReadLimit(readLimit)
	_ = cl.Conn.SetReadDeadline(time.Now().Add(2 * pingInterval))
	cl.Conn.SetPongHandler(func(string) error {
		return cl.Conn.SetReadDeadline(time.Now().Add(2 * pingInterval))
	})

	for {
		if _, _, err := cl.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				slog.Debug("websocket read failed", "client", cl.ID, "err", err)
			}
			return
		}
	}
}
