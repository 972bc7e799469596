// Package errors provides domain-specific error types for ptzcon.
//
// These types carry structured context (operation, port, offending
// input) that lets the console decide whether a failure is reported to
// the operator, logged, or fatal at startup.
package errors

import (
	"errors"
	"fmt"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrMalformedFrame  = errors.New("malformed frame")
	ErrPresetNotFound  = errors.New("preset not found")
	ErrTransportClosed = errors.New("transport is closed")
	ErrNoSerialPort    = errors.New("no usable serial port found")
	ErrSendFailed      = errors.New("send failed")
	ErrInterrupted     = errors.New("interrupted")
)

// ── Structured error types ───────────────────────────────────────────

// SerialError represents a failure talking to the serial device.
type SerialError struct {
	Op   string // "open", "write", "flush", "close"
	Port string // device path, e.g. /dev/ttyUSB0
	Err  error
}

func (e *SerialError) Error() string {
	if e.Port == "" {
		return fmt.Sprintf("serial %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("serial %s %s: %v", e.Op, e.Port, e.Err)
}

func (e *SerialError) Unwrap() error { return e.Err }

// FrameError describes why a piece of operator input is not a valid
// hex frame.  It always unwraps to ErrMalformedFrame.
type FrameError struct {
	Input  string // the text as given, before space stripping
	Pos    int    // index into the stripped text, -1 if not positional
	Reason string
}

func (e *FrameError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%v: %s at position %d", ErrMalformedFrame, e.Reason, e.Pos)
	}
	return fmt.Sprintf("%v: %s", ErrMalformedFrame, e.Reason)
}

func (e *FrameError) Unwrap() error { return ErrMalformedFrame }

// PresetError names the preset that could not be resolved or loaded.
type PresetError struct {
	Name string
	Err  error
}

func (e *PresetError) Error() string {
	return fmt.Sprintf("preset %q: %v", e.Name, e.Err)
}

func (e *PresetError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// WrapSerial creates a SerialError.
func WrapSerial(op, port string, err error) *SerialError {
	return &SerialError{Op: op, Port: port, Err: err}
}

// Malformed creates a FrameError.  Pass pos < 0 when the failure is not
// tied to a single character (e.g. odd length).
func Malformed(input string, pos int, reason string) *FrameError {
	return &FrameError{Input: input, Pos: pos, Reason: reason}
}

// NotFound creates a PresetError wrapping ErrPresetNotFound.
func NotFound(name string) *PresetError {
	return &PresetError{Name: name, Err: ErrPresetNotFound}
}

// ── Classification helpers ───────────────────────────────────────────

// IsOperatorError reports whether err is caused by what the operator
// typed (bad frame, unknown preset) rather than by the device.
func IsOperatorError(err error) bool {
	return errors.Is(err, ErrMalformedFrame) || errors.Is(err, ErrPresetNotFound)
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use ptzcon/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
