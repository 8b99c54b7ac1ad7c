package websocket

import "encoding/json"

type Room struct {
	Id      string               `json:"id"`
	Clients map[string]*WSClient `json:"clients"`
}

// WSMessage is what feed clients receive. Content is the event envelope
// exactly as it was published on the Redis channel.
type WSMessage struct {
	Content   json.RawMessage `json:"content"`
	RoomID    string          `json:"roomId"`
	Timestamp int64           `json:"timestamp"`
}
