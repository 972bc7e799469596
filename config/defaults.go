package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultBaudRate is the VISCA serial default.
	DefaultBaudRate = 9600

	// DefaultOpenAttempts opens the port once and gives up on failure.
	DefaultOpenAttempts = 1

	// DefaultOpenRetryDelay is the first backoff delay between open
	// attempts.
	DefaultOpenRetryDelay = 500 * time.Millisecond

	// DefaultHistoryFile is created in the user's home directory.
	DefaultHistoryFile = ".camera_history"

	// DefaultHistoryLimit caps the saved history.
	DefaultHistoryLimit = 1000

	// DefaultVerbosity prints warnings and errors.
	DefaultVerbosity = 1

	// DefaultLogMaxSizeMB rotates --log-file after this many megabytes.
	DefaultLogMaxSizeMB = 10

	// DefaultLogMaxBackups is how many rotated log files are kept.
	DefaultLogMaxBackups = 3
)

// SupportedBaudRates are the rates VISCA cameras accept.
var SupportedBaudRates = []int{2400, 4800, 9600, 19200, 38400, 57600, 115200} //nolint:gochecknoglobals
