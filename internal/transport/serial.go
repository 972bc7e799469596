package transport

import (
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"

	"ptzcon/internal/errors"
	"ptzcon/internal/frame"
	"ptzcon/util"
)

// Port is the subset of serial.Port the transport uses.  It lets tests
// substitute an in-memory device.
type Port interface {
	io.Writer
	ResetInputBuffer() error
	Close() error
}

// Serial writes frames to a camera over an RS-232/RS-485 style serial
// line.
type Serial struct {
	name   string
	port   Port
	logger *util.Logger

	mu     sync.Mutex
	closed bool
}

// NewSerial wraps an already-open port.  name is used only in errors
// and log lines.
func NewSerial(name string, port Port, logger *util.Logger) *Serial {
	return &Serial{name: name, port: port, logger: logger}
}

// Name returns the device the transport is bound to.
func (s *Serial) Name() string { return s.name }

// SendFrame decodes frameText and writes the bytes in one call.
func (s *Serial) SendFrame(frameText string) error {
	payload, err := frame.Decode(frameText)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.WrapSerial("write", s.name, errors.ErrTransportClosed)
	}

	s.logger.Debug("tx %s: %s", s.name, frame.Format(payload))

	n, err := s.port.Write(payload)
	if err != nil {
		return errors.WrapSerial("write", s.name, err)
	}
	if n != len(payload) {
		return errors.WrapSerial("write", s.name,
			fmt.Errorf("short write: %d of %d bytes: %w", n, len(payload), errors.ErrSendFailed))
	}
	return nil
}

// Flush discards anything the camera sent that has not been read yet.
func (s *Serial) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.WrapSerial("flush", s.name, errors.ErrTransportClosed)
	}
	if err := s.port.ResetInputBuffer(); err != nil {
		return errors.WrapSerial("flush", s.name, err)
	}
	return nil
}

// Close releases the serial port.  Subsequent sends fail with
// ErrTransportClosed.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.logger.Verbose("closing %s", s.name)
	if err := s.port.Close(); err != nil {
		return errors.WrapSerial("close", s.name, err)
	}
	return nil
}

// ── mode helpers ─────────────────────────────────────────────────────

// Mode returns the 8N1 line settings at the given baud rate, the
// framing VISCA-style cameras expect.
func Mode(baud int) *serial.Mode {
	return &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}
