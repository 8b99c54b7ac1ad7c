package popup

import (
	"context"
	"fmt"
	"strings"
	"time"
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

const (
	ReasonGranted    = "granted"
	ReasonSlotTaken  = "slot_taken"
	ReasonSuppressed = "suppressed"
)

type Decision struct {
	Granted bool
	Reason  string
	// Active is the slot holder after the request, empty when free.
	Active ID
}

type Candidate struct {
	ID      ID
	Trigger Trigger
	Delay   time.Duration
}

// Service combines the per-session slot with each producer's dismissal memory.
type Service struct {
	slots     SlotStore
	prefs     PreferenceStore
	clock     Clock
	producers map[ID]Producer
	order     []ID
}

func NewService(slots SlotStore, prefs PreferenceStore, clock Clock, producers ...Producer) *Service {
	if clock == nil {
		clock = SystemClock
	}
	if len(producers) == 0 {
		producers = DefaultProducers()
	}
	s := &Service{
		slots:     slots,
		prefs:     prefs,
		clock:     clock,
		producers: make(map[ID]Producer, len(producers)),
	}
	for _, p := range producers {
		if _, dup := s.producers[p.ID]; dup {
			continue
		}
		s.producers[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	return s
}

func dismissalKey(sessionID string, id ID) string {
	return fmt.Sprintf("popup:dismissed:%s:%s", sessionID, id)
}

func (s *Service) producer(id ID) (Producer, error) {
	p, ok := s.producers[ID(strings.TrimSpace(string(id)))]
	if !ok {
		return Producer{}, newError(ErrorCodeValidation, "unknown popup", nil)
	}
	return p, nil
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return newError(ErrorCodeValidation, "session id is required", nil)
	}
	return nil
}

func (s *Service) suppressed(ctx context.Context, sessionID string, p Producer) (bool, error) {
	if !p.remembers() {
		return false, nil
	}
	_, ok, err := s.prefs.Get(ctx, dismissalKey(sessionID, p.ID))
	if err != nil {
		return false, newError(ErrorCodeInternal, "failed to read popup preferences", err)
	}
	return ok, nil
}

// Candidates lists the producers the page may arm for this session.
func (s *Service) Candidates(ctx context.Context, sessionID string) ([]Candidate, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(s.order))
	for _, id := range s.order {
		p := s.producers[id]
		hidden, err := s.suppressed(ctx, sessionID, p)
		if err != nil {
			return nil, err
		}
		if hidden {
			continue
		}
		out = append(out, Candidate{ID: p.ID, Trigger: p.Trigger, Delay: p.Delay})
	}
	return out, nil
}

func (s *Service) RequestShow(ctx context.Context, sessionID string, id ID) (Decision, error) {
	if err := validateSession(sessionID); err != nil {
		return Decision{}, err
	}
	p, err := s.producer(id)
	if err != nil {
		return Decision{}, err
	}

	hidden, err := s.suppressed(ctx, sessionID, p)
	if err != nil {
		return Decision{}, err
	}
	if hidden {
		active, _, err := s.slots.Active(ctx, sessionID)
		if err != nil {
			return Decision{}, newError(ErrorCodeInternal, "failed to read popup slot", err)
		}
		observeRequest(p.ID, ReasonSuppressed)
		return Decision{Reason: ReasonSuppressed, Active: active}, nil
	}

	granted, err := s.slots.RequestShow(ctx, sessionID, p.ID)
	if err != nil {
		return Decision{}, newError(ErrorCodeInternal, "failed to claim popup slot", err)
	}
	if granted {
		observeRequest(p.ID, ReasonGranted)
		return Decision{Granted: true, Reason: ReasonGranted, Active: p.ID}, nil
	}

	active, _, err := s.slots.Active(ctx, sessionID)
	if err != nil {
		return Decision{}, newError(ErrorCodeInternal, "failed to read popup slot", err)
	}
	observeRequest(p.ID, ReasonSlotTaken)
	return Decision{Reason: ReasonSlotTaken, Active: active}, nil
}

// Dismiss releases the slot when id holds it. With remember set, the
// producer stays hidden for its suppression window.
func (s *Service) Dismiss(ctx context.Context, sessionID string, id ID, remember bool) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}
	p, err := s.producer(id)
	if err != nil {
		return err
	}

	if err := s.slots.Dismiss(ctx, sessionID, p.ID); err != nil {
		return newError(ErrorCodeInternal, "failed to release popup slot", err)
	}

	if remember && p.remembers() {
		stamp := s.clock.Now().UTC().Format(time.RFC3339)
		if err := s.prefs.Set(ctx, dismissalKey(sessionID, p.ID), stamp, p.suppressionTTL()); err != nil {
			return newError(ErrorCodeInternal, "failed to store popup preference", err)
		}
	}
	return nil
}

func (s *Service) Active(ctx context.Context, sessionID string) (ID, bool, error) {
	if err := validateSession(sessionID); err != nil {
		return "", false, err
	}
	active, held, err := s.slots.Active(ctx, sessionID)
	if err != nil {
		return "", false, newError(ErrorCodeInternal, "failed to read popup slot", err)
	}
	return active, held, nil
}
