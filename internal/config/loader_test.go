package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CAMPUS_HTTP_PORT",
		"CAMPUS_SQLITE_DSN",
		"CAMPUS_TOKEN_SECRET",
		"CAMPUS_TOKEN_TTL",
		"CAMPUS_EVENT_LIST_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults when only the secret is set", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CAMPUS_TOKEN_SECRET", "hunter2-hunter2")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.HTTPPort != 8080 {
			t.Errorf("expected default port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.TokenTTL != 72*time.Hour {
			t.Errorf("expected default ttl 72h, got %v", cfg.TokenTTL)
		}
		if cfg.EventListLimit != 10 {
			t.Errorf("expected default limit 10, got %d", cfg.EventListLimit)
		}
		if !strings.Contains(cfg.SQLiteDSN, "foreign_keys(1)") {
			t.Errorf("expected foreign keys in default DSN, got %q", cfg.SQLiteDSN)
		}
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CAMPUS_TOKEN_SECRET", "hunter2-hunter2")
		t.Setenv("CAMPUS_HTTP_PORT", "9090")
		t.Setenv("CAMPUS_SQLITE_DSN", "file:events.db")
		t.Setenv("CAMPUS_TOKEN_TTL", "24h")
		t.Setenv("CAMPUS_EVENT_LIST_LIMIT", "25")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.HTTPPort != 9090 || cfg.SQLiteDSN != "file:events.db" {
			t.Errorf("unexpected config %+v", cfg)
		}
		if cfg.TokenTTL != 24*time.Hour || cfg.EventListLimit != 25 {
			t.Errorf("unexpected config %+v", cfg)
		}
	})

	t.Run("requires the token secret", func(t *testing.T) {
		clearEnv(t)

		_, err := Load()
		if err == nil || !strings.Contains(err.Error(), "CAMPUS_TOKEN_SECRET") {
			t.Fatalf("expected missing secret error, got %v", err)
		}
	})

	t.Run("reports unparseable values together", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CAMPUS_TOKEN_SECRET", "hunter2-hunter2")
		t.Setenv("CAMPUS_HTTP_PORT", "not-a-port")
		t.Setenv("CAMPUS_TOKEN_TTL", "-5h")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected an error")
		}
		for _, key := range []string{"CAMPUS_HTTP_PORT", "CAMPUS_TOKEN_TTL"} {
			if !strings.Contains(err.Error(), key) {
				t.Errorf("expected error to mention %s, got %v", key, err)
			}
		}
	})
}
