package dto

type SessionResponse struct {
	SessionID string `json:"sessionId"`
}
