package config

import (
	"testing"
)

// clearEnv blanks every PTZCON_ variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PTZCON_PORT", "PTZCON_BAUD", "PTZCON_OPEN_ATTEMPTS", "PTZCON_INIT",
		"PTZCON_PRESETS", "PTZCON_HISTORY", "PTZCON_HISTORY_LIMIT",
		"PTZCON_VERBOSE", "PTZCON_LOG_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv_SerialLine(t *testing.T) {
	clearEnv(t)
	t.Setenv("PTZCON_PORT", "/dev/ttyUSB3")
	t.Setenv("PTZCON_BAUD", "38400")
	t.Setenv("PTZCON_OPEN_ATTEMPTS", "5")

	cfg := Defaults()
	LoadFromEnv(cfg)

	if cfg.Port != "/dev/ttyUSB3" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.BaudRate != 38400 {
		t.Errorf("BaudRate = %d, want 38400", cfg.BaudRate)
	}
	if cfg.OpenAttempts != 5 {
		t.Errorf("OpenAttempts = %d, want 5", cfg.OpenAttempts)
	}
}

func TestLoadFromEnv_Console(t *testing.T) {
	clearEnv(t)
	t.Setenv("PTZCON_PRESETS", "/etc/ptzcon/presets.yaml")
	t.Setenv("PTZCON_HISTORY", "/var/lib/ptzcon/history")
	t.Setenv("PTZCON_LOG_FILE", "/var/log/ptzcon.log")

	cfg := Defaults()
	LoadFromEnv(cfg)

	if cfg.PresetFile != "/etc/ptzcon/presets.yaml" {
		t.Errorf("PresetFile = %q", cfg.PresetFile)
	}
	if cfg.HistoryPath != "/var/lib/ptzcon/history" {
		t.Errorf("HistoryPath = %q", cfg.HistoryPath)
	}
	if cfg.LogFile != "/var/log/ptzcon.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
}

func TestLoadFromEnv_Booleans(t *testing.T) {
	for _, v := range []string{"1", "true", "yes", "TRUE", "Yes"} {
		t.Run(v, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PTZCON_INIT", v)
			cfg := Defaults()
			LoadFromEnv(cfg)
			if !cfg.SendInit {
				t.Error("SendInit should be true")
			}
		})
	}
	for _, v := range []string{"0", "false", "no", "on"} {
		t.Run("off-"+v, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PTZCON_INIT", v)
			cfg := Defaults()
			LoadFromEnv(cfg)
			if cfg.SendInit {
				t.Error("SendInit should stay false")
			}
		})
	}
}

func TestLoadFromEnv_HistoryLimitZero(t *testing.T) {
	clearEnv(t)
	t.Setenv("PTZCON_HISTORY_LIMIT", "0")
	cfg := Defaults()
	LoadFromEnv(cfg)
	if cfg.HistoryLimit != 0 {
		t.Errorf("HistoryLimit = %d, want explicit 0", cfg.HistoryLimit)
	}
}

func TestLoadFromEnv_NoOverrideWhenEmpty(t *testing.T) {
	clearEnv(t)

	cfg := &Config{Port: "/dev/ttyS1", BaudRate: 19200, HistoryLimit: 50}
	LoadFromEnv(cfg)

	if cfg.Port != "/dev/ttyS1" {
		t.Errorf("Port was overridden: %q", cfg.Port)
	}
	if cfg.BaudRate != 19200 {
		t.Errorf("BaudRate was overridden: %d", cfg.BaudRate)
	}
	if cfg.HistoryLimit != 50 {
		t.Errorf("HistoryLimit was overridden: %d", cfg.HistoryLimit)
	}
}

func TestLoadFromEnv_InvalidIntIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("PTZCON_BAUD", "fast")
	t.Setenv("PTZCON_HISTORY_LIMIT", "lots")
	cfg := Defaults()
	LoadFromEnv(cfg)
	if cfg.BaudRate != DefaultBaudRate {
		t.Errorf("BaudRate should keep default for invalid input, got %d", cfg.BaudRate)
	}
	if cfg.HistoryLimit != DefaultHistoryLimit {
		t.Errorf("HistoryLimit should keep default, got %d", cfg.HistoryLimit)
	}
}

func TestLoadFromEnv_Verbose(t *testing.T) {
	clearEnv(t)
	t.Setenv("PTZCON_VERBOSE", "3")
	cfg := Defaults()
	LoadFromEnv(cfg)
	if cfg.Verbose != 3 {
		t.Errorf("Verbose = %d, want 3", cfg.Verbose)
	}
}
