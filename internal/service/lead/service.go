package lead

import (
	"blackarrow-backend/internal/events"
	"blackarrow-backend/internal/model"
	"blackarrow-backend/internal/store"
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxFieldLength   = 200
	maxMessageLength = 5000
	producerName     = "blackarrow-public"
)

type Service struct {
	repo      Repository
	publisher events.Publisher
	now       func() time.Time
}

func New(st store.Store, publisher events.Publisher) *Service {
	return NewWithRepository(NewStoreRepository(st), publisher, time.Now)
}

func NewWithRepository(repo Repository, publisher events.Publisher, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if publisher == nil {
		publisher = events.Discard{}
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		now:       now,
	}
}

// newsletterID keys a subscription by its address so the store's insert
// guard rejects a second signup racing the first.
func newsletterID(email string) string {
	return "newsletter:" + email
}

func (s *Service) stamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func createdAt(lead model.LeadItem) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, lead.CreatedAt)
	return t
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	if email == "" || len(email) > maxFieldLength {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (p CaptureParams) normalized() CaptureParams {
	return CaptureParams{
		Name:       strings.TrimSpace(p.Name),
		Email:      normalizeEmail(p.Email),
		Phone:      strings.TrimSpace(p.Phone),
		Company:    strings.TrimSpace(p.Company),
		Service:    strings.TrimSpace(p.Service),
		Budget:     strings.TrimSpace(p.Budget),
		Message:    strings.TrimSpace(p.Message),
		Region:     strings.ToLower(strings.TrimSpace(p.Region)),
		SourcePage: strings.TrimSpace(p.SourcePage),
	}
}

func (p CaptureParams) validate() error {
	if !validEmail(p.Email) {
		return newError(ErrorCodeValidation, "a valid email is required", nil)
	}
	if p.Name == "" {
		return newError(ErrorCodeValidation, "name is required", nil)
	}
	if p.Message == "" {
		return newError(ErrorCodeValidation, "message is required", nil)
	}
	for _, f := range []string{p.Name, p.Phone, p.Company, p.Service, p.Budget, p.Region, p.SourcePage} {
		if len(f) > maxFieldLength {
			return newError(ErrorCodeValidation, "field is too long", nil)
		}
	}
	if len(p.Message) > maxMessageLength {
		return newError(ErrorCodeValidation, "message is too long", nil)
	}
	return nil
}

// Capture stores a contact form submission and announces it.
func (s *Service) Capture(ctx context.Context, params CaptureParams) (model.LeadItem, error) {
	p := params.normalized()
	if err := p.validate(); err != nil {
		return model.LeadItem{}, err
	}

	now := s.stamp()
	lead := model.LeadItem{
		ID:         uuid.NewString(),
		Kind:       model.LeadKindContact,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Company:    p.Company,
		Service:    p.Service,
		Budget:     p.Budget,
		Message:    p.Message,
		Region:     p.Region,
		SourcePage: p.SourcePage,
		Status:     model.LeadStatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateLead(ctx, lead); err != nil {
		return model.LeadItem{}, newError(ErrorCodeInternal, "failed to save lead", err)
	}
	s.announce(ctx, events.TypeLeadCaptured, lead)
	return lead, nil
}

// Subscribe signs email up for the newsletter. Signing up twice returns
// the existing lead.
func (s *Service) Subscribe(ctx context.Context, email, region, source string) (model.LeadItem, bool, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return model.LeadItem{}, false, newError(ErrorCodeValidation, "a valid email is required", nil)
	}

	existing, err := s.repo.FindLeads(ctx, store.Filter{
		"kind":  string(model.LeadKindNewsletter),
		"email": email,
	})
	if err != nil {
		return model.LeadItem{}, false, newError(ErrorCodeInternal, "failed to look up subscription", err)
	}
	if len(existing) > 0 {
		return existing[0], false, nil
	}

	now := s.stamp()
	lead := model.LeadItem{
		ID:         newsletterID(email),
		Kind:       model.LeadKindNewsletter,
		Email:      email,
		Region:     strings.ToLower(strings.TrimSpace(region)),
		SourcePage: strings.TrimSpace(source),
		Status:     model.LeadStatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = s.repo.CreateLead(ctx, lead)
	if errors.Is(err, ErrExists) {
		current, err := s.repo.GetLead(ctx, lead.ID)
		if err != nil {
			return model.LeadItem{}, false, newError(ErrorCodeInternal, "failed to load subscription", err)
		}
		return current, false, nil
	}
	if err != nil {
		return model.LeadItem{}, false, newError(ErrorCodeInternal, "failed to save subscription", err)
	}
	s.announce(ctx, events.TypeLeadCaptured, lead)
	return lead, true, nil
}

// List returns leads newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]model.LeadItem, error) {
	f := store.Filter{}
	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, newError(ErrorCodeValidation, "invalid status", nil)
		}
		f["status"] = string(filter.Status)
	}
	switch filter.Kind {
	case "":
	case model.LeadKindContact, model.LeadKindNewsletter:
		f["kind"] = string(filter.Kind)
	default:
		return nil, newError(ErrorCodeValidation, "invalid kind", nil)
	}

	leads, err := s.repo.FindLeads(ctx, f)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list leads", err)
	}
	sort.SliceStable(leads, func(i, j int) bool {
		ti, tj := createdAt(leads[i]), createdAt(leads[j])
		if ti.Equal(tj) {
			return leads[i].ID > leads[j].ID
		}
		return ti.After(tj)
	})
	return leads, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status model.LeadStatus) (model.LeadItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.LeadItem{}, newError(ErrorCodeValidation, "lead id is required", nil)
	}
	if !status.Valid() {
		return model.LeadItem{}, newError(ErrorCodeValidation, "invalid status", nil)
	}

	lead, err := s.repo.UpdateLeadStatus(ctx, id, status, s.stamp())
	if errors.Is(err, ErrNotFound) {
		return model.LeadItem{}, newError(ErrorCodeNotFound, "lead not found", err)
	}
	if err != nil {
		return model.LeadItem{}, newError(ErrorCodeInternal, "failed to update lead", err)
	}
	s.announce(ctx, events.TypeLeadStatusChanged, lead)
	return lead, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return newError(ErrorCodeValidation, "lead id is required", nil)
	}
	err := s.repo.DeleteLead(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return newError(ErrorCodeNotFound, "lead not found", err)
	}
	if err != nil {
		return newError(ErrorCodeInternal, "failed to delete lead", err)
	}
	return nil
}

// announce never fails the caller; the lead is already stored.
func (s *Service) announce(ctx context.Context, eventType string, lead model.LeadItem) {
	env, err := events.NewEnvelope(ctx, producerName, eventType, lead, s.now())
	if err == nil {
		err = s.publisher.Publish(ctx, env)
	}
	if err != nil {
		slog.WarnContext(ctx, "lead event publish failed", "type", eventType, "lead_id", lead.ID, "error", err)
	}
}
