package region

import (
	"blackarrow-backend/internal/model"
	"blackarrow-backend/internal/store"
	"context"
	"errors"
)

var ErrNotFound = errors.New("region not found")

type Repository interface {
	GetRegion(ctx context.Context, code string) (model.RegionItem, error)
	ListRegions(ctx context.Context) ([]model.RegionItem, error)
	PutRegion(ctx context.Context, region model.RegionItem) error
	DeleteRegion(ctx context.Context, code string) error
}

type StoreRepository struct {
	st store.Store
}

func NewStoreRepository(st store.Store) *StoreRepository {
	return &StoreRepository{st: st}
}

func (r *StoreRepository) GetRegion(ctx context.Context, code string) (model.RegionItem, error) {
	rec, err := r.st.Get(ctx, model.RegionsTable, code)
	if errors.Is(err, store.ErrNotFound) {
		return model.RegionItem{}, ErrNotFound
	}
	if err != nil {
		return model.RegionItem{}, err
	}
	var region model.RegionItem
	err = store.Decode(rec, &region)
	return region, err
}

func (r *StoreRepository) ListRegions(ctx context.Context) ([]model.RegionItem, error) {
	recs, err := r.st.Select(ctx, model.RegionsTable, nil)
	if err != nil {
		return nil, err
	}
	out := make([]model.RegionItem, 0, len(recs))
	for _, rec := range recs {
		var region model.RegionItem
		if err := store.Decode(rec, &region); err != nil {
			return nil, err
		}
		out = append(out, region)
	}
	return out, nil
}

// PutRegion inserts or replaces the region with the same code.
func (r *StoreRepository) PutRegion(ctx context.Context, region model.RegionItem) error {
	rec, err := store.Encode(region)
	if err != nil {
		return err
	}
	_, err = r.st.Update(ctx, model.RegionsTable, region.Code, rec)
	if errors.Is(err, store.ErrNotFound) {
		_, err = r.st.Insert(ctx, model.RegionsTable, rec)
	}
	return err
}

func (r *StoreRepository) DeleteRegion(ctx context.Context, code string) error {
	err := r.st.Delete(ctx, model.RegionsTable, code)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
