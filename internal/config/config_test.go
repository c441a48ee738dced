package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_USERNAME", "admin")
	t.Setenv("APP_PASSWORD", "s3cret")
	t.Setenv("APP_API_KEY", "key-1")
	t.Setenv("SESSION_SECRET", "sign-me")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", cfg.Server.ListenAddr)
	}
	if cfg.RateLimit.Requests != 10 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("rate limit defaults = %d/%v", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	if cfg.Upstream.BaseURL == "" || strings.HasSuffix(cfg.Upstream.BaseURL, "/") {
		t.Errorf("BaseURL = %q, want non-empty without trailing slash", cfg.Upstream.BaseURL)
	}
}

func TestLoadRequiresCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PASSWORD", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load must fail when a credential is unset")
	} else if !strings.Contains(err.Error(), "APP_PASSWORD") {
		t.Errorf("error %q does not name the missing variable", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_REQUESTS", "3")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UPSTREAM_BASE_URL", "https://mirror.example/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RateLimit.Requests != 3 || cfg.RateLimit.Window != 5*time.Second {
		t.Errorf("rate limit = %d/%v", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Upstream.BaseURL != "https://mirror.example" {
		t.Errorf("BaseURL = %q, trailing slash must be trimmed", cfg.Upstream.BaseURL)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_REQUESTS", "lots")

	if _, err := Load(); err == nil {
		t.Fatal("Load must reject non-numeric RATE_LIMIT_REQUESTS")
	}
}
