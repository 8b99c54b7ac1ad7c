package websocket

import (
	"context"
	"log/slog"
)

// Hub owns every room; only Run touches the room maps.
type Hub struct {
	Rooms      map[string]*Room
	Register   chan *WSClient
	Unregister chan *WSClient
	Broadcast  chan *WSMessage
	stats      chan chan int
	quit       chan struct{}
}

// NewHub creates the fixed set of rooms clients may join.
func NewHub(rooms ...string) *Hub {
	h := &Hub{
		Rooms:      make(map[string]*Room, len(rooms)),
		Register:   make(chan *WSClient),
		Unregister: make(chan *WSClient),
		Broadcast:  make(chan *WSMessage, 64),
		stats:      make(chan chan int),
		quit:       make(chan struct{}),
	}
	for _, id := range rooms {
		h.Rooms[id] = &Room{Id: id, Clients: make(map[string]*WSClient)}
	}
	feedRooms.Set(float64(len(h.Rooms)))
	return h
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.quit)
	for {
		select {
		case <-ctx.Done():
			for _, room := range h.Rooms {
				for id, client := range room.Clients {
					delete(room.Clients, id)
					close(client.Message)
				}
				feedConnections.WithLabelValues(room.Id).Set(0)
			}
			return

		case client := <-h.Register:
			room, ok := h.Rooms[client.RoomID]
			if !ok {
				slog.Warn("websocket client for unknown room", "room", client.RoomID, "client", client.ID)
				close(client.Message)
				continue
			}
			room.Clients[client.ID] = client
			feedConnections.WithLabelValues(room.Id).Inc()

		case client := <-h.Unregister:
			room, ok := h.Rooms[client.RoomID]
			if !ok {
				continue
			}
			if existing, ok := room.Clients[client.ID]; ok && existing == client {
				delete(room.Clients, client.ID)
				close(client.Message)
				feedConnections.WithLabelValues(room.Id).Dec()
			}

		case message := <-h.Broadcast:
			room, ok := h.Rooms[message.RoomID]
			if !ok {
				continue
			}
			delivered := 0
			for _, client := range room.Clients {
				select {
				case client.Message <- message:
					delivered++
				default:
					// slow consumer; drop it rather than stall the feed
					close(client.Message)
					delete(room.Clients, client.ID)
					feedConnections.WithLabelValues(room.Id).Dec()
					feedDropped.WithLabelValues(room.Id).Inc()
				}
			}
			if delivered > 0 {
				feedDelivered.WithLabelValues(room.Id).Add(float64(delivered))
			}

		case reply := <-h.stats:
			n := 0
			for _, room := range h.Rooms {
				n += len(room.Clients)
			}
			reply <- n
		}
	}
}

func (h *Hub) register(cl *WSClient) bool {
	select {
	case h.Register <- cl:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) unregister(cl *WSClient) {
	select {
	case h.Unregister <- cl:
	case <-h.quit:
	}
}

// Publish hands a message to the hub, giving up once ctx is done or the hub stops.
func (h *Hub) Publish(ctx context.Context, msg *WSMessage) bool {
	select {
	case h.Broadcast <- msg:
		return true
	case <-ctx.Done():
		return false
	case <-h.quit:
		return false
	}
}

// Connections reports the number of registered clients; 0 once Run has returned.
func (h *Hub) Connections() int {
	reply := make(chan int, 1)
	select {
	case h.stats <- reply:
		return <-reply
	case <-h.quit:
		return 0
	}
}
