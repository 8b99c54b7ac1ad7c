package popup

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func newTestService() (*Service, *fixedClock) {
	clock := &fixedClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewService(NewRegistry(), NewMemoryPreferences(clock), clock)
	return svc, clock
}

func TestServiceRequestShowReasons(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	d, err := svc.RequestShow(ctx, "sess", CookieConsent)
	if err != nil {
		t.Fatalf("request show: %v", err)
	}
	if !d.Granted || d.Reason != ReasonGranted || d.Active != CookieConsent {
		t.Fatalf("unexpected decision: %+v", d)
	}

	d, err = svc.RequestShow(ctx, "sess", Newsletter)
	if err != nil {
		t.Fatalf("request show: %v", err)
	}
	if d.Granted || d.Reason != ReasonSlotTaken || d.Active != CookieConsent {
		t.Fatalf("expected slot_taken behind cookie consent, got %+v", d)
	}
}

func TestServiceDismissWithRememberSuppresses(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService()

	if _, err := svc.RequestShow(ctx, "sess", Newsletter); err != nil {
		t.Fatalf("request show: %v", err)
	}
	if err := svc.Dismiss(ctx, "sess", Newsletter, true); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	d, err := svc.RequestShow(ctx, "sess", Newsletter)
	if err != nil {
		t.Fatalf("request show: %v", err)
	}
	if d.Granted || d.Reason != ReasonSuppressed {
		t.Fatalf("expected suppressed, got %+v", d)
	}

	candidates, err := svc.Candidates(ctx, "sess")
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	for _, c := range candidates {
		if c.ID == Newsletter {
			t.Fatalf("expected newsletter to be hidden from candidates")
		}
	}

	clock.now = clock.now.Add(25 * time.Hour)
	d, err = svc.RequestShow(ctx, "sess", Newsletter)
	if err != nil {
		t.Fatalf("request show: %v", err)
	}
	if !d.Granted {
		t.Fatalf("expected newsletter again after suppression window, got %+v", d)
	}
}

func TestServiceCookieConsentIsPermanent(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService()

	_, _ = svc.RequestShow(ctx, "sess", CookieConsent)
	if err := svc.Dismiss(ctx, "sess", CookieConsent, true); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	clock.now = clock.now.Add(365 * 24 * time.Hour)
	d, _ := svc.RequestShow(ctx, "sess", CookieConsent)
	if d.Reason != ReasonSuppressed {
		t.Fatalf("expected cookie consent to stay hidden, got %+v", d)
	}
}

func TestServiceDismissWithoutRememberFreesSlot(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, _ = svc.RequestShow(ctx, "sess", LaunchBanner)
	if err := svc.Dismiss(ctx, "sess", LaunchBanner, false); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	d, _ := svc.RequestShow(ctx, "sess", LaunchBanner)
	if !d.Granted {
		t.Fatalf("expected launch banner to be shown again, got %+v", d)
	}
}

func TestServiceCandidatesOrder(t *testing.T) {
	svc, _ := newTestService()

	candidates, err := svc.Candidates(context.Background(), "sess")
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	want := []ID{CookieConsent, LaunchBanner, Newsletter, ExitIntent}
	if len(candidates) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(candidates))
	}
	for i, c := range candidates {
		if c.ID != want[i] {
			t.Fatalf("candidate %d: expected %q, got %q", i, want[i], c.ID)
		}
	}
	if candidates[0].Delay != 1500*time.Millisecond {
		t.Fatalf("unexpected cookie consent delay %s", candidates[0].Delay)
	}
}

func TestServiceValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.RequestShow(ctx, "", Newsletter)
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error for empty session, got %v", err)
	}

	_, err = svc.RequestShow(ctx, "sess", ID("mystery"))
	if !errors.As(err, &svcErr) || svcErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error for unknown popup, got %v", err)
	}
}
