// Package metrics counts what happened during a console session:
// frames delivered and failed, bytes written, input rejected, and
// faults recovered.
//
// A nil *Collector is a valid no-op receiver, so callers never need to
// nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime counters for one session.
type Collector struct {
	framesSent    atomic.Int64
	framesFailed  atomic.Int64
	bytesOut      atomic.Int64
	inputRejected atomic.Int64
	faults        atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastSent     time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Frames ───────────────────────────────────────────────────────────

// FrameSent records a delivered frame of n bytes.
func (c *Collector) FrameSent(n int) {
	if c == nil {
		return
	}
	c.framesSent.Add(1)
	c.bytesOut.Add(int64(n))
	c.mu.Lock()
	c.lastSent = time.Now()
	c.mu.Unlock()
}

// FrameFailed records a frame the transport refused, with its error.
func (c *Collector) FrameFailed(msg string) {
	if c == nil {
		return
	}
	c.framesFailed.Add(1)
	c.recordError(msg)
}

// FramesSent returns the number of delivered frames.
func (c *Collector) FramesSent() int64 {
	if c == nil {
		return 0
	}
	return c.framesSent.Load()
}

// FramesFailed returns the number of failed sends.
func (c *Collector) FramesFailed() int64 {
	if c == nil {
		return 0
	}
	return c.framesFailed.Load()
}

// BytesOut returns the total bytes delivered.
func (c *Collector) BytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Input ────────────────────────────────────────────────────────────

// InputRejected records a malformed frame or unknown preset.
func (c *Collector) InputRejected() {
	if c == nil {
		return
	}
	c.inputRejected.Add(1)
}

// Rejected returns the number of rejected inputs.
func (c *Collector) Rejected() int64 {
	if c == nil {
		return 0
	}
	return c.inputRejected.Load()
}

// ── Faults ───────────────────────────────────────────────────────────

// Fault records a recovered fault inside one console iteration.
func (c *Collector) Fault(msg string) {
	if c == nil {
		return
	}
	c.faults.Add(1)
	c.recordError(msg)
}

// Faults returns the number of recovered faults.
func (c *Collector) Faults() int64 {
	if c == nil {
		return 0
	}
	return c.faults.Load()
}

func (c *Collector) recordError(msg string) {
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all counters.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	FramesSent       int64  `json:"frames_sent"`
	FramesFailed     int64  `json:"frames_failed"`
	BytesOut         int64  `json:"bytes_out"`
	InputRejected    int64  `json:"input_rejected"`
	Faults           int64  `json:"faults"`
	LastSent         string `json:"last_sent,omitempty"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:        time.Since(c.startTime).Truncate(time.Second).String(),
		FramesSent:    c.framesSent.Load(),
		FramesFailed:  c.framesFailed.Load(),
		BytesOut:      c.bytesOut.Load(),
		InputRejected: c.inputRejected.Load(),
		Faults:        c.faults.Load(),
	}
	if !c.lastSent.IsZero() {
		s.LastSent = c.lastSent.Format(time.RFC3339)
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
