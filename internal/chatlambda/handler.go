// Package chatlambda exposes the matching chatbot behind API Gateway.
package chatlambda

import (
	"blackarrow-backend/internal/chatbot"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

const correlationHeader = "X-Correlation-Id"

type chatService interface {
	Send(ctx context.Context, sessionID, text string) (chatbot.Exchange, error)
	Ask(text string) chatbot.Match
}

type askRequest struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

type askResponse struct {
	Answer    string `json:"answer"`
	Outcome   string `json:"outcome"`
	SessionID string `json:"sessionId,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type Handler struct {
	chat chatService
}

func NewHandler(chat chatService) (*Handler, error) {
	if chat == nil {
		return nil, errors.New("chatlambda: chat service is required")
	}
	return &Handler{chat: chat}, nil
}

func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return uuid.NewString()
}

func respond(status int, corrID string, body any) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"internal_error","message":"internal error"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: corrID,
		},
		Body: string(data),
	}
}

// Handle answers one message. With a sessionId the exchange is kept in the
// session transcript; without one the question is answered statelessly.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(req.Headers)
	logger := slog.With("correlation_id", corrID)

	var in askRequest
	if err := json.Unmarshal([]byte(req.Body), &in); err != nil {
		return respond(http.StatusBadRequest, corrID, errorResponse{Error: string(chatbot.ErrorCodeValidation), Message: "invalid request body"}), nil
	}

	if strings.TrimSpace(in.SessionID) == "" {
		text := strings.TrimSpace(in.Text)
		if text == "" || len(text) > chatbot.MaxMessageLength {
			return respond(http.StatusBadRequest, corrID, errorResponse{Error: string(chatbot.ErrorCodeValidation), Message: "message text is required"}), nil
		}
		match := h.chat.Ask(text)
		return respond(http.StatusOK, corrID, askResponse{Answer: match.Answer, Outcome: string(match.Outcome)}), nil
	}

	ex, err := h.chat.Send(ctx, in.SessionID, in.Text)
	if err != nil {
		var chatErr *chatbot.Error
		if errors.As(err, &chatErr) && chatErr.Code == chatbot.ErrorCodeValidation {
			return respond(http.StatusBadRequest, corrID, errorResponse{Error: string(chatErr.Code), Message: chatErr.Message}), nil
		}
		logger.ErrorContext(ctx, "chat send failed", "err", err)
		return respond(http.StatusInternalServerError, corrID, errorResponse{Error: string(chatbot.ErrorCodeInternal), Message: "internal error"}), nil
	}

	return respond(http.StatusOK, corrID, askResponse{
		Answer:    ex.Bot.Text,
		Outcome:   string(ex.Outcome),
		SessionID: in.SessionID,
	}), nil
}
