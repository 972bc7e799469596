// Package transport owns the physical link to the camera.  The console
// only ever sees the narrow Transport interface: hand over a frame,
// learn whether it went out, and release the link at the end.
package transport

// Transport delivers frames to the camera.  Calls are synchronous and
// never overlap; a slow device stalls the caller.
type Transport interface {
	// SendFrame decodes a validated hex frame and writes it to the
	// device.  A nil error means every byte was accepted by the link.
	SendFrame(frame string) error

	// Close releases the link.  It is safe to call more than once.
	Close() error
}
