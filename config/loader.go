package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the PTZCON_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	// Serial line
	if v := os.Getenv("PTZCON_PORT"); v != "" {
		cfg.Port = v
	}
	if v := envInt("PTZCON_BAUD"); v > 0 {
		cfg.BaudRate = v
	}
	if v := envInt("PTZCON_OPEN_ATTEMPTS"); v > 0 {
		cfg.OpenAttempts = v
	}
	if envBool("PTZCON_INIT") {
		cfg.SendInit = true
	}

	// Console
	if v := os.Getenv("PTZCON_PRESETS"); v != "" {
		cfg.PresetFile = v
	}
	if v := os.Getenv("PTZCON_HISTORY"); v != "" {
		cfg.HistoryPath = v
	}
	if v, ok := envIntSet("PTZCON_HISTORY_LIMIT"); ok {
		cfg.HistoryLimit = v
	}

	// Output
	if v := envInt("PTZCON_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
	if v := os.Getenv("PTZCON_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	n, _ := envIntSet(key)
	return n
}

// envIntSet distinguishes an explicit 0 from an unset or garbled value.
func envIntSet(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}
