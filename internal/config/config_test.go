package config

import (
	"testing"
	"time"
)

func TestEnvGetters(t *testing.T) {
	t.Setenv("TEST_STRING", "payroll")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DURATION", "5m")
	t.Setenv("TEST_DURATION_SECONDS", "30")

	if got := getEnvString("TEST_STRING", "fallback"); got != "payroll" {
		t.Errorf("expected payroll, got %s", got)
	}
	if got := getEnvString("TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %s", got)
	}
	if got := getEnvInt("TEST_INT", 0); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := getEnvInt("TEST_STRING", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
	if got := getEnvBool("TEST_BOOL", false); !got {
		t.Error("expected true")
	}
	if got := getEnvDuration("TEST_DURATION", 0); got != 5*time.Minute {
		t.Errorf("expected 5m, got %v", got)
	}
	// Bare integers are read as seconds.
	if got := getEnvDuration("TEST_DURATION_SECONDS", 0); got != 30*time.Second {
		t.Errorf("expected 30s, got %v", got)
	}
}
