package region

import (
	"blackarrow-backend/internal/model"
	"blackarrow-backend/internal/store"
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService() *Service {
	fixed := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	return NewWithRepository(NewStoreRepository(store.NewMemory()), func() time.Time { return fixed })
}

func expectCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected service error, got %v", err)
	}
	if svcErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, svcErr.Code)
	}
}

func ukParams() UpsertParams {
	return UpsertParams{
		Name:           "United Kingdom",
		Currency:       "gbp",
		CurrencySymbol: "£",
		Pricing:        []model.PricingTier{{Name: "Starter", Price: 499}},
	}
}

func TestResolveFallsBackToBuiltinWhenEmpty(t *testing.T) {
	svc := newTestService()

	region, err := svc.Resolve(context.Background(), "fr")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if region.Code != builtinRegion.Code || !region.Default {
		t.Fatalf("expected builtin region, got %+v", region)
	}
}

func TestFirstRegionBecomesDefault(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	uk, err := svc.Upsert(ctx, "UK", ukParams())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !uk.Default || uk.Currency != "GBP" || uk.Code != "uk" {
		t.Fatalf("unexpected region %+v", uk)
	}
	if uk.Pricing[0].Features == nil {
		t.Fatalf("expected empty features slice")
	}
}

func TestResolveUnknownCodeUsesDefault(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, _ = svc.Upsert(ctx, "uk", ukParams())
	_, err := svc.Upsert(ctx, "in", UpsertParams{Name: "India", Currency: "INR", CurrencySymbol: "₹"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, _ := svc.Resolve(ctx, "IN")
	if got.Code != "in" {
		t.Fatalf("expected india, got %q", got.Code)
	}
	got, _ = svc.Resolve(ctx, "zz")
	if got.Code != "uk" {
		t.Fatalf("expected default uk, got %q", got.Code)
	}
	got, _ = svc.Resolve(ctx, "")
	if got.Code != "uk" {
		t.Fatalf("expected default uk for empty code, got %q", got.Code)
	}

	regions, _ := svc.List(ctx)
	if len(regions) != 2 || regions[0].Code != "uk" {
		t.Fatalf("expected default first, got %+v", regions)
	}
}

func TestUpsertMovesDefault(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, _ = svc.Upsert(ctx, "uk", ukParams())

	in := UpsertParams{Name: "India", Currency: "INR", Default: true}
	if _, err := svc.Upsert(ctx, "in", in); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	uk, _ := svc.Get(ctx, "uk")
	if uk.Default {
		t.Fatalf("expected uk to lose the default flag")
	}

	p := ukParams()
	p.Name = "Britain"
	updated, err := svc.Upsert(ctx, "uk", p)
	if err != nil || updated.Name != "Britain" {
		t.Fatalf("expected update in place, got %+v %v", updated, err)
	}

	in.Default = false
	_, err = svc.Upsert(ctx, "in", in)
	expectCode(t, err, ErrorCodeValidation)
}

func TestUpsertValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "u", ukParams())
	expectCode(t, err, ErrorCodeValidation)

	p := ukParams()
	p.Currency = "pounds"
	_, err = svc.Upsert(ctx, "uk", p)
	expectCode(t, err, ErrorCodeValidation)

	p = ukParams()
	p.Pricing = []model.PricingTier{{Name: "Starter", Price: -1}}
	_, err = svc.Upsert(ctx, "uk", p)
	expectCode(t, err, ErrorCodeValidation)
}

func TestDefaultRegionCannotBeDeleted(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, _ = svc.Upsert(ctx, "uk", ukParams())
	_, _ = svc.Upsert(ctx, "in", UpsertParams{Name: "India", Currency: "INR"})

	expectCode(t, svc.Delete(ctx, "uk"), ErrorCodeForbidden)
	if err := svc.Delete(ctx, "in"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expectCode(t, svc.Delete(ctx, "in"), ErrorCodeNotFound)
}

func TestUpsertReplacesClearedFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first := ukParams()
	first.AgentsHeadline = "old headline"
	first.CafesHeadline = "old cafes"
	first.ContactPhone = "+44 1"
	if _, err := svc.Upsert(ctx, "uk", first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	if _, err := svc.Upsert(ctx, "uk", UpsertParams{Name: "United Kingdom", Currency: "GBP"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := svc.Get(ctx, "uk")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AgentsHeadline != "" || got.CafesHeadline != "" || got.ContactPhone != "" {
		t.Fatalf("cleared fields survived the upsert: %+v", got)
	}
	if len(got.Pricing) != 0 {
		t.Fatalf("expected pricing to be replaced, got %+v", got.Pricing)
	}
}
