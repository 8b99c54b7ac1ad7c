package env

import (
	"strings"
	"testing"
)

func TestGetOrDefault(t *testing.T) {
	t.Setenv("BLACKARROW_TEST_KEY", "  value ")

	if got := Get("BLACKARROW_TEST_KEY"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := GetOrDefault("BLACKARROW_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := Get(StoreDriver); got == "" {
		t.Fatalf("expected store driver default")
	}
}

func TestRequireListsMissingKeys(t *testing.T) {
	t.Setenv("BLACKARROW_TEST_PRESENT", "x")

	err := Require("BLACKARROW_TEST_PRESENT", "BLACKARROW_TEST_ABSENT_A", "BLACKARROW_TEST_ABSENT_B")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "BLACKARROW_TEST_ABSENT_A, BLACKARROW_TEST_ABSENT_B") {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Require("BLACKARROW_TEST_PRESENT"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetOverrides(t *testing.T) {
	Set("BLACKARROW_TEST_OVERRIDE", "secret")
	if got := MustGet("BLACKARROW_TEST_OVERRIDE"); got != "secret" {
		t.Fatalf("expected override, got %q", got)
	}
}
