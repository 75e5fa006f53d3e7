package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "DB_PATH", "ALLOWED_ORIGINS", "POLL_INTERVAL",
		"WINDOW_SIZE", "SNMP_PORT", "SNMP_TIMEOUT", "SNMP_RETRIES",
		"JWT_SECRET", "JWT_EXPIRY", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Address != ":3000" {
		t.Fatalf("expected default address :3000, got %s", cfg.Address)
	}
	if cfg.PollInterval != time.Second {
		t.Fatalf("expected default poll interval 1s, got %s", cfg.PollInterval)
	}
	if cfg.WindowSize != DefaultWindowSize {
		t.Fatalf("expected default window size %d, got %d", DefaultWindowSize, cfg.WindowSize)
	}
	if cfg.SNMPPort != 161 {
		t.Fatalf("expected default snmp port 161, got %d", cfg.SNMPPort)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected log defaults: %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("POLL_INTERVAL", "2s")
	t.Setenv("WINDOW_SIZE", "120")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg := Load()
	if cfg.Address != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Address)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("expected 2s, got %s", cfg.PollInterval)
	}
	if cfg.WindowSize != 120 {
		t.Fatalf("expected 120, got %d", cfg.WindowSize)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.example" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("POLL_INTERVAL", "not-a-duration")
	t.Setenv("WINDOW_SIZE", "abc")

	cfg := Load()
	if cfg.PollInterval != time.Second {
		t.Fatalf("invalid duration should fall back to 1s, got %s", cfg.PollInterval)
	}
	if cfg.WindowSize != DefaultWindowSize {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.WindowSize)
	}
}

func TestClampWindowSize(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, MinWindowSize},
		{4, MinWindowSize},
		{5, 5},
		{60, 60},
		{300, 300},
		{301, MaxWindowSize},
		{100000, MaxWindowSize},
	}

	for _, tt := range tests {
		if got := ClampWindowSize(tt.in); got != tt.want {
			t.Errorf("ClampWindowSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
