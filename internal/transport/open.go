package transport

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"go.bug.st/serial"

	"ptzcon/internal/errors"
	"ptzcon/internal/retry"
	"ptzcon/util"
)

// DefaultCandidates are probed, in order, when no port is given.  Any
// other port the OS enumerates is tried after these.
var DefaultCandidates = []string{"/dev/ttyUSB0", "/dev/ttyACM0", "/dev/ttyS0"} //nolint:gochecknoglobals

// OpenFunc opens a named serial device.
type OpenFunc func(name string, mode *serial.Mode) (Port, error)

// ListFunc enumerates serial devices known to the OS.
type ListFunc func() ([]string, error)

// Options controls how OpenSerial finds and opens the device.
type Options struct {
	// Port is the device to open.  Empty means probe Candidates and
	// then whatever List reports.
	Port string
	// BaudRate defaults to 9600 when zero.
	BaudRate int
	// Attempts is how many times the whole probe is tried before
	// giving up (default 1).
	Attempts int
	// RetryDelay is the initial pause between attempts (default 500ms).
	RetryDelay time.Duration

	Candidates []string
	Open       OpenFunc
	List       ListFunc
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.BaudRate == 0 {
		out.BaudRate = 9600
	}
	if out.Attempts <= 0 {
		out.Attempts = 1
	}
	if out.RetryDelay == 0 {
		out.RetryDelay = 500 * time.Millisecond
	}
	if out.Candidates == nil {
		out.Candidates = DefaultCandidates
	}
	if out.Open == nil {
		out.Open = openDevice
	}
	if out.List == nil {
		out.List = serial.GetPortsList
	}
	return out
}

// OpenSerial resolves and opens the serial device described by opts,
// flushes anything pending on the receive side, and returns the ready
// transport.  Failure here is fatal for the console.
func OpenSerial(ctx context.Context, opts Options, logger *util.Logger) (*Serial, error) {
	o := opts.withDefaults()
	mode := Mode(o.BaudRate)

	b := &retry.Backoff{
		InitialDelay: o.RetryDelay,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		MaxAttempts:  o.Attempts,
	}

	var (
		name string
		port Port
	)
	err := b.Do(ctx, func(attempt int) error {
		if attempt > 1 {
			logger.Info("retrying serial open (attempt %d/%d)", attempt, o.Attempts)
		}
		var err error
		name, port, err = probe(o, mode, logger)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("serial port opened: %s @ %d baud", name, o.BaudRate)

	s := NewSerial(name, port, logger)
	if err := s.Flush(); err != nil {
		logger.Warn("could not flush receiver: %v", err)
	}
	return s, nil
}

// probe tries the configured port, or every candidate in turn.
func probe(o Options, mode *serial.Mode, logger *util.Logger) (string, Port, error) {
	if o.Port != "" {
		p, err := o.Open(o.Port, mode)
		if err != nil {
			serr := errors.WrapSerial("open", o.Port, err)
			if permissionDenied(err) {
				return "", nil, retry.Permanent(serr)
			}
			return "", nil, serr
		}
		return o.Port, p, nil
	}

	var errs []error
	for _, name := range candidates(o, logger) {
		p, err := o.Open(name, mode)
		if err == nil {
			return name, p, nil
		}
		logger.Verbose("open %s: %v", name, err)
		errs = append(errs, errors.WrapSerial("open", name, err))
	}
	if len(errs) == 0 {
		return "", nil, errors.ErrNoSerialPort
	}
	return "", nil, fmt.Errorf("%w: %w", errors.ErrNoSerialPort, errors.Join(errs...))
}

// permissionDenied reports an open failure that another attempt will
// not fix.
func permissionDenied(err error) bool {
	if errors.Is(err, fs.ErrPermission) {
		return true
	}
	var pe *serial.PortError
	return errors.As(err, &pe) && pe.Code() == serial.PermissionDenied
}

// candidates merges the fixed probe list with the OS enumeration,
// keeping the fixed order first and dropping duplicates.
func candidates(o Options, logger *util.Logger) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, name := range o.Candidates {
		add(name)
	}
	listed, err := o.List()
	if err != nil {
		logger.Verbose("enumerate serial ports: %v", err)
	}
	for _, name := range listed {
		add(name)
	}
	return out
}

// ListPorts returns the serial devices the OS reports.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

func openDevice(name string, mode *serial.Mode) (Port, error) {
	return serial.Open(name, mode)
}
