package chatbot

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeInternal   ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// MaxMessageLength bounds a single visitor message.
const MaxMessageLength = 2000

// Exchange is one visitor message and the bot's reply.
type Exchange struct {
	User    Message
	Bot     Message
	Outcome Outcome
}

type Service struct {
	kb          *KnowledgeBase
	transcripts TranscriptStore
	now         func() time.Time
	newID       func() string
}

func NewService(kb *KnowledgeBase, transcripts TranscriptStore) *Service {
	return NewServiceWithClock(kb, transcripts, time.Now)
}

func NewServiceWithClock(kb *KnowledgeBase, transcripts TranscriptStore, now func() time.Time) *Service {
	if kb == nil {
		kb = DefaultKnowledgeBase()
	}
	if transcripts == nil {
		transcripts = NewMemoryTranscripts()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		kb:          kb,
		transcripts: transcripts,
		now:         now,
		newID:       uuid.NewString,
	}
}

func (s *Service) Send(ctx context.Context, sessionID, text string) (Exchange, error) {
	sessionID = strings.TrimSpace(sessionID)
	text = strings.TrimSpace(text)
	if sessionID == "" {
		return Exchange{}, newError(ErrorCodeValidation, "session id is required", nil)
	}
	if text == "" {
		return Exchange{}, newError(ErrorCodeValidation, "message text is required", nil)
	}
	if len(text) > MaxMessageLength {
		return Exchange{}, newError(ErrorCodeValidation, "message text is too long", nil)
	}

	match := s.kb.Classify(text)
	now := s.now().UTC()
	ex := Exchange{
		User:    Message{ID: s.newID(), Text: text, Sender: SenderUser, Timestamp: now},
		Bot:     Message{ID: s.newID(), Text: match.Answer, Sender: SenderBot, Timestamp: now},
		Outcome: match.Outcome,
	}

	if err := s.transcripts.Append(ctx, sessionID, ex.User, ex.Bot); err != nil {
		return Exchange{}, newError(ErrorCodeInternal, "failed to store chat messages", err)
	}
	chatbotReplies.WithLabelValues(string(match.Outcome)).Inc()
	return ex, nil
}

func (s *Service) History(ctx context.Context, sessionID string) ([]Message, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, newError(ErrorCodeValidation, "session id is required", nil)
	}
	msgs, err := s.transcripts.List(ctx, sessionID)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to load chat messages", err)
	}
	return msgs, nil
}

// Ask answers text without recording it.
func (s *Service) Ask(text string) Match {
	return s.kb.Classify(text)
}
