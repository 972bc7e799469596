// Package config defines the runtime configuration for ptzcon.
package config

import (
	"fmt"
	"strings"

	"ptzcon/internal/errors"
	"ptzcon/internal/transport"
)

// Config holds every tuneable for a single console session.
type Config struct {
	// ── Serial line ──────────────────────────────────────────────────
	Port         string // device path; empty means probe
	BaudRate     int
	OpenAttempts int  // tries before giving up on the port
	SendInit     bool // send the "init" preset after opening

	// ── Console ──────────────────────────────────────────────────────
	PresetFile   string // YAML presets merged over the built-in table
	HistoryPath  string // empty means ~/.camera_history
	HistoryLimit int    // entries kept on save; 0 keeps all

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
	LogFile string

	// ── Modes ────────────────────────────────────────────────────────
	ListPorts bool
	DryRun    bool
}

// Defaults returns a Config populated from defaults.go.
func Defaults() *Config {
	return &Config{
		BaudRate:     DefaultBaudRate,
		OpenAttempts: DefaultOpenAttempts,
		HistoryLimit: DefaultHistoryLimit,
		Verbose:      DefaultVerbosity,
	}
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
// Every failure is a *errors.ConfigError naming the offending flag.
func (c *Config) Validate() error {
	if !validBaud(c.BaudRate) {
		return &errors.ConfigError{
			Field:   "baud",
			Value:   c.BaudRate,
			Message: "unsupported baud rate",
			Hint:    fmt.Sprintf("VISCA cameras normally run at %d; supported rates: %s", DefaultBaudRate, baudList()),
		}
	}
	if c.OpenAttempts < 1 {
		return &errors.ConfigError{
			Field:   "open-attempts",
			Value:   c.OpenAttempts,
			Message: "must be at least 1",
		}
	}
	if c.HistoryLimit < 0 {
		return &errors.ConfigError{
			Field:   "history-limit",
			Value:   c.HistoryLimit,
			Message: "must not be negative",
			Hint:    "use 0 to keep every entry",
		}
	}
	if c.Port != "" && strings.TrimSpace(c.Port) == "" {
		return &errors.ConfigError{
			Field:   "port",
			Value:   fmt.Sprintf("%q", c.Port),
			Message: "device path is blank",
			Hint:    "omit --port to probe " + strings.Join(transport.DefaultCandidates, ", "),
		}
	}
	if c.Verbose < 0 {
		return &errors.ConfigError{Field: "verbose", Value: c.Verbose, Message: "must not be negative"}
	}
	return nil
}

func validBaud(b int) bool {
	for _, r := range SupportedBaudRates {
		if r == b {
			return true
		}
	}
	return false
}

func baudList() string {
	parts := make([]string, len(SupportedBaudRates))
	for i, r := range SupportedBaudRates {
		parts[i] = fmt.Sprint(r)
	}
	return strings.Join(parts, ", ")
}
