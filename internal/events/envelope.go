package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TypeLeadCaptured      = "lead.captured.v1"
	TypeLeadStatusChanged = "lead.status_changed.v1"
)

type Meta struct {
	// Request correlation ID, falls back to ID.
	CorrelationID string    `json:"correlation_id,omitempty"`
	ID            string    `json:"id"`
	Producer      string    `json:"producer,omitempty"`
	Time          time.Time `json:"time"`
	// Event name and version, e.g. lead.captured.v1
	Type string `json:"type"`
}

type Envelope struct {
	Meta Meta            `json:"meta"`
	Data json.RawMessage `json:"data"`
}

type correlationKey struct{}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

func NewEnvelope(ctx context.Context, producer, eventType string, data any, now time.Time) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	id := uuid.NewString()
	corr := CorrelationID(ctx)
	if corr == "" {
		corr = id
	}
	return Envelope{
		Meta: Meta{
			CorrelationID: corr,
			ID:            id,
			Producer:      producer,
			Time:          now.UTC(),
			Type:          eventType,
		},
		Data: raw,
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
}

// Multi publishes to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, env Envelope) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Discard struct{}

func (Discard) Publish(context.Context, Envelope) error { return nil }
