package errors

import (
	"fmt"
	"io"
	"testing"
)

func TestSerialError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  SerialError
		want string
	}{
		{
			name: "with port",
			err:  SerialError{Op: "open", Port: "/dev/ttyUSB0", Err: fmt.Errorf("permission denied")},
			want: "serial open /dev/ttyUSB0: permission denied",
		},
		{
			name: "no port",
			err:  SerialError{Op: "write", Err: io.ErrClosedPipe},
			want: "serial write: io: read/write on closed pipe",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerialError_Unwrap(t *testing.T) {
	err := WrapSerial("write", "/dev/ttyS0", io.EOF)
	if !Is(err, io.EOF) {
		t.Error("should unwrap to io.EOF")
	}
}

func TestFrameError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *FrameError
		want string
	}{
		{"positional", Malformed("81zz", 2, "non-hex character 'z'"), "malformed frame: non-hex character 'z' at position 2"},
		{"length", Malformed("810", -1, "odd number of hex digits (3)"), "malformed frame: odd number of hex digits (3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if !Is(tt.err, ErrMalformedFrame) {
				t.Error("should unwrap to ErrMalformedFrame")
			}
		})
	}
}

func TestPresetError(t *testing.T) {
	err := NotFound("bogus")
	if got, want := err.Error(), `preset "bogus": preset not found`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !Is(err, ErrPresetNotFound) {
		t.Error("should unwrap to ErrPresetNotFound")
	}
}

func TestConfigError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  ConfigError
		want string
	}{
		{
			name: "with value and hint",
			err: ConfigError{
				Field:   "baud",
				Value:   -1,
				Message: "must be positive",
				Hint:    "common rates are 9600, 19200, 38400",
			},
			want: "config: --baud=-1: must be positive\n  hint: common rates are 9600, 19200, 38400",
		},
		{
			name: "missing value no hint",
			err: ConfigError{
				Field:   "history",
				Message: "cannot determine home directory",
			},
			want: "config: --history: cannot determine home directory",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestIsOperatorError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"malformed", Malformed("x", 0, "bad"), true},
		{"preset", NotFound("x"), true},
		{"wrapped preset", fmt.Errorf("resolve: %w", NotFound("x")), true},
		{"serial", WrapSerial("write", "/dev/ttyUSB0", io.EOF), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOperatorError(tt.err); got != tt.want {
				t.Errorf("IsOperatorError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentinels(t *testing.T) {
	sentinels := []error{
		ErrMalformedFrame, ErrPresetNotFound, ErrTransportClosed,
		ErrNoSerialPort, ErrSendFailed, ErrInterrupted,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && Is(a, b) {
				t.Errorf("sentinel %d and %d should not match", i, j)
			}
		}
	}
}
