package lead

import (
	"blackarrow-backend/internal/model"
	"blackarrow-backend/internal/store"
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("lead not found")
	ErrExists   = errors.New("lead already exists")
)

type Repository interface {
	CreateLead(ctx context.Context, lead model.LeadItem) error
	GetLead(ctx context.Context, id string) (model.LeadItem, error)
	FindLeads(ctx context.Context, filter store.Filter) ([]model.LeadItem, error)
	UpdateLeadStatus(ctx context.Context, id string, status model.LeadStatus, updatedAt string) (model.LeadItem, error)
	DeleteLead(ctx context.Context, id string) error
}

type StoreRepository struct {
	st store.Store
}

func NewStoreRepository(st store.Store) *StoreRepository {
	return &StoreRepository{st: st}
}

func (r *StoreRepository) CreateLead(ctx context.Context, lead model.LeadItem) error {
	rec, err := store.Encode(lead)
	if err != nil {
		return err
	}
	_, err = r.st.Insert(ctx, model.LeadsTable, rec)
	if errors.Is(err, store.ErrConflict) {
		return ErrExists
	}
	return err
}

func decodeLead(rec store.Record) (model.LeadItem, error) {
	var lead model.LeadItem
	err := store.Decode(rec, &lead)
	return lead, err
}

func (r *StoreRepository) GetLead(ctx context.Context, id string) (model.LeadItem, error) {
	rec, err := r.st.Get(ctx, model.LeadsTable, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.LeadItem{}, ErrNotFound
	}
	if err != nil {
		return model.LeadItem{}, err
	}
	return decodeLead(rec)
}

func (r *StoreRepository) FindLeads(ctx context.Context, filter store.Filter) ([]model.LeadItem, error) {
	recs, err := r.st.Select(ctx, model.LeadsTable, filter)
	if err != nil {
		return nil, err
	}
	out := make([]model.LeadItem, 0, len(recs))
	for _, rec := range recs {
		lead, err := decodeLead(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, lead)
	}
	return out, nil
}

func (r *StoreRepository) UpdateLeadStatus(ctx context.Context, id string, status model.LeadStatus, updatedAt string) (model.LeadItem, error) {
	rec, err := r.st.Update(ctx, model.LeadsTable, id, store.Record{
		"status":    string(status),
		"updatedAt": updatedAt,
	})
	if errors.Is(err, store.ErrNotFound) {
		return model.LeadItem{}, ErrNotFound
	}
	if err != nil {
		return model.LeadItem{}, err
	}
	return decodeLead(rec)
}

func (r *StoreRepository) DeleteLead(ctx context.Context, id string) error {
	err := r.st.Delete(ctx, model.LeadsTable, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
