package popup

import (
	"context"
	"testing"
	"time"
)

func TestMemoryPreferencesSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	prefs := NewMemoryPreferences(ClockFunc(func() time.Time { return now }))

	_ = prefs.Set(ctx, dismissalKey("gone", CookieConsent), "1", 0)
	_ = prefs.Set(ctx, dismissalKey("gone", Newsletter), "1", 24*time.Hour)
	_ = prefs.Set(ctx, dismissalKey("short", LaunchBanner), "1", time.Minute)
	_ = prefs.Set(ctx, dismissalKey("active", CookieConsent), "1", 0)

	now = now.Add(20 * time.Minute)
	if _, ok, _ := prefs.Get(ctx, dismissalKey("active", CookieConsent)); !ok {
		t.Fatal("expected the active visitor's consent to be remembered")
	}

	// "short" expired; nothing idle yet.
	if removed := prefs.Sweep(30 * time.Minute); removed != 1 {
		t.Fatalf("expected 1 expired value removed, got %d", removed)
	}

	now = now.Add(15 * time.Minute)
	if removed := prefs.Sweep(30 * time.Minute); removed != 2 {
		t.Fatalf("expected both idle values of the gone session removed, got %d", removed)
	}
	if prefs.Len() != 1 {
		t.Fatalf("expected only the active visitor's value left, got %d", prefs.Len())
	}
}
