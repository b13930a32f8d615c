package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("IDENTITY_URL", "https://identity.local/")
	t.Setenv("WIZARD_TTL", "")
	t.Setenv("CORS_ORIGINS", " http://a.local, ,http://b.local")

	cfg := Load()

	if cfg.IdentityURL != "https://identity.local" {
		t.Errorf("IdentityURL = %q, want trailing slash trimmed", cfg.IdentityURL)
	}
	if cfg.WizardTTL != 2*time.Hour {
		t.Errorf("WizardTTL = %s, want 2h", cfg.WizardTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.local" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestGetDurationInvalid(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	if got := getDuration("SESSION_TTL", time.Minute); got != time.Minute {
		t.Errorf("getDuration() = %s, want fallback 1m", got)
	}
}

func TestGetBool(t *testing.T) {
	t.Setenv("LOG_STDOUT", "true")
	if !getBool("LOG_STDOUT", false) {
		t.Error("expected true")
	}
	t.Setenv("LOG_STDOUT", "nope")
	if getBool("LOG_STDOUT", false) {
		t.Error("expected fallback false for unparsable value")
	}
}
