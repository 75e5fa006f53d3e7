// Package config
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	MinWindowSize     = 5
	MaxWindowSize     = 300
	DefaultWindowSize = 60
)

type Config struct {
	Address        string
	DBPath         string
	AllowedOrigins []string

	PollInterval time.Duration
	WindowSize   int

	SNMPPort    uint16
	SNMPTimeout time.Duration
	SNMPRetries int

	JWTSecret string
	JWTExpiry time.Duration

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Address:        envString("HTTP_ADDR", ":3000"),
		DBPath:         envString("DB_PATH", "snmp-monitor.db"),
		AllowedOrigins: envList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),

		PollInterval: envDuration("POLL_INTERVAL", time.Second),
		WindowSize:   ClampWindowSize(envInt("WINDOW_SIZE", DefaultWindowSize)),

		SNMPPort:    uint16(envInt("SNMP_PORT", 161)),
		SNMPTimeout: envDuration("SNMP_TIMEOUT", 2*time.Second),
		SNMPRetries: envInt("SNMP_RETRIES", 1),

		JWTSecret: envString("JWT_SECRET", ""),
		JWTExpiry: envDuration("JWT_EXPIRY", 24*time.Hour),

		LogLevel:  envString("LOG_LEVEL", "info"),
		LogFormat: envString("LOG_FORMAT", "text"),
	}
}

// ClampWindowSize keeps the retained sample count inside the supported
// 5..300 range.
func ClampWindowSize(n int) int {
	if n < MinWindowSize {
		return MinWindowSize
	}
	if n > MaxWindowSize {
		return MaxWindowSize
	}
	return n
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	if len(out) == 0 {
		return fallback
	}
	return out
}
