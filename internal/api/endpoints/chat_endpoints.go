package endpoints

import (
	"blackarrow-backend/internal/api/middleware"
	"blackarrow-backend/internal/chatbot"
	"blackarrow-backend/internal/dto"
	"net/http"
	"time"
)

type ChatEndpoints interface {
	History(http.ResponseWriter, *http.Request) error
	Send(http.ResponseWriter, *http.Request) error
}

type chatEndpoints struct {
	service *chatbot.Service
}

func NewChatEndpoints(service *chatbot.Service) ChatEndpoints {
	return &chatEndpoints{service: service}
}

func toChatMessage(m chatbot.Message) dto.ChatMessage {
	return dto.ChatMessage{
		ID:        m.ID,
		Text:      m.Text,
		Sender:    string(m.Sender),
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
	}
}

func (h *chatEndpoints) History(w http.ResponseWriter, r *http.Request) error {
	msgs, err := h.service.History(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		return serviceError("chat history", err)
	}

	resp := dto.ChatHistoryResponse{Messages: make([]dto.ChatMessage, 0, len(msgs))}
	for _, m := range msgs {
		resp.Messages = append(resp.Messages, toChatMessage(m))
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *chatEndpoints) Send(w http.ResponseWriter, r *http.Request) error {
	var req dto.ChatSendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	ex, err := h.service.Send(r.Context(), middleware.SessionID(r.Context()), req.Text)
	if err != nil {
		return serviceError("chat send", err)
	}
	return WriteJSON(w, http.StatusOK, dto.ChatSendResponse{
		User:    toChatMessage(ex.User),
		Bot:     toChatMessage(ex.Bot),
		Outcome: string(ex.Outcome),
	})
}
