package region

import (
	"blackarrow-backend/internal/model"
	"blackarrow-backend/internal/store"
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(st store.Store) *Service {
	return NewWithRepository(NewStoreRepository(st), time.Now)
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func validCode(code string) bool {
	if len(code) < 2 || len(code) > 8 {
		return false
	}
	for _, r := range code {
		if !(r == '-' || (r >= 'a' && r <= 'z')) {
			return false
		}
	}
	return true
}

func validCurrency(currency string) bool {
	if len(currency) != 3 {
		return false
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// List returns regions with the default first, then by name.
func (s *Service) List(ctx context.Context) ([]model.RegionItem, error) {
	regions, err := s.repo.ListRegions(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list regions", err)
	}
	if len(regions) == 0 {
		return []model.RegionItem{builtinRegion}, nil
	}
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].Default != regions[j].Default {
			return regions[i].Default
		}
		return regions[i].Name < regions[j].Name
	})
	return regions, nil
}

func (s *Service) defaultRegion(ctx context.Context) (model.RegionItem, error) {
	regions, err := s.List(ctx)
	if err != nil {
		return model.RegionItem{}, err
	}
	// List puts the default first; without one the first by name stands in.
	return regions[0], nil
}

// Resolve returns the region for code, or the default region when code is
// empty or unknown.
func (s *Service) Resolve(ctx context.Context, code string) (model.RegionItem, error) {
	code = normalizeCode(code)
	if code == "" {
		return s.defaultRegion(ctx)
	}
	region, err := s.repo.GetRegion(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return s.defaultRegion(ctx)
	}
	if err != nil {
		return model.RegionItem{}, newError(ErrorCodeInternal, "failed to load region", err)
	}
	return region, nil
}

func (s *Service) Get(ctx context.Context, code string) (model.RegionItem, error) {
	region, err := s.repo.GetRegion(ctx, normalizeCode(code))
	if errors.Is(err, ErrNotFound) {
		return model.RegionItem{}, newError(ErrorCodeNotFound, "region not found", err)
	}
	if err != nil {
		return model.RegionItem{}, newError(ErrorCodeInternal, "failed to load region", err)
	}
	return region, nil
}

// Upsert writes the region. Marking it default clears the flag elsewhere.
func (s *Service) Upsert(ctx context.Context, code string, params UpsertParams) (model.RegionItem, error) {
	region := model.RegionItem{
		Code:           normalizeCode(code),
		Name:           strings.TrimSpace(params.Name),
		Currency:       strings.ToUpper(strings.TrimSpace(params.Currency)),
		CurrencySymbol: strings.TrimSpace(params.CurrencySymbol),
		Pricing:        make([]model.PricingTier, 0, len(params.Pricing)),
		AgentsHeadline: strings.TrimSpace(params.AgentsHeadline),
		CafesHeadline:  strings.TrimSpace(params.CafesHeadline),
		ContactPhone:   strings.TrimSpace(params.ContactPhone),
		Default:        params.Default,
		UpdatedAt:      s.now().UTC().Format(time.RFC3339),
	}

	if !validCode(region.Code) {
		return model.RegionItem{}, newError(ErrorCodeValidation, "region code must be 2-8 lowercase letters", nil)
	}
	if region.Name == "" {
		return model.RegionItem{}, newError(ErrorCodeValidation, "name is required", nil)
	}
	if !validCurrency(region.Currency) {
		return model.RegionItem{}, newError(ErrorCodeValidation, "currency must be a 3-letter ISO code", nil)
	}
	for _, tier := range params.Pricing {
		tier.Name = strings.TrimSpace(tier.Name)
		if tier.Name == "" {
			return model.RegionItem{}, newError(ErrorCodeValidation, "pricing tier name is required", nil)
		}
		if tier.Price < 0 {
			return model.RegionItem{}, newError(ErrorCodeValidation, "pricing tier price must not be negative", nil)
		}
		if tier.Features == nil {
			tier.Features = []string{}
		}
		region.Pricing = append(region.Pricing, tier)
	}

	existing, err := s.repo.ListRegions(ctx)
	if err != nil {
		return model.RegionItem{}, newError(ErrorCodeInternal, "failed to list regions", err)
	}
	if len(existing) == 0 || (len(existing) == 1 && existing[0].Code == region.Code) {
		region.Default = true
	}
	for _, other := range existing {
		if other.Code == region.Code && other.Default && !region.Default {
			return model.RegionItem{}, newError(ErrorCodeValidation, "mark another region as default first", nil)
		}
	}

	if err := s.repo.PutRegion(ctx, region); err != nil {
		return model.RegionItem{}, newError(ErrorCodeInternal, "failed to save region", err)
	}
	if region.Default {
		for _, other := range existing {
			if other.Code == region.Code || !other.Default {
				continue
			}
			other.Default = false
			if err := s.repo.PutRegion(ctx, other); err != nil {
				return model.RegionItem{}, newError(ErrorCodeInternal, "failed to update previous default region", err)
			}
		}
	}
	return region, nil
}

func (s *Service) Delete(ctx context.Context, code string) error {
	region, err := s.Get(ctx, code)
	if err != nil {
		return err
	}
	if region.Default {
		return newError(ErrorCodeForbidden, "the default region cannot be deleted", nil)
	}
	err = s.repo.DeleteRegion(ctx, region.Code)
	if errors.Is(err, ErrNotFound) {
		return newError(ErrorCodeNotFound, "region not found", err)
	}
	if err != nil {
		return newError(ErrorCodeInternal, "failed to delete region", err)
	}
	return nil
}
