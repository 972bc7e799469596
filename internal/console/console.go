// Package console is the interactive command interpreter: it reads a
// line, classifies it, resolves presets, validates the hex frame, hands
// it to the transport, and records accepted commands in history.
//
// The loop is a two-state machine (running, terminated).  Every
// iteration ends in an explicit Outcome; only an exit command, an
// interrupt, or a failure to read input terminates it.  Shutdown always
// flushes history and then releases the transport, whichever way the
// loop ended.
package console

import (
	"context"
	"fmt"
	"io"
	"os"

	"ptzcon/internal/errors"
	"ptzcon/internal/frame"
	"ptzcon/internal/history"
	"ptzcon/internal/metrics"
	"ptzcon/internal/preset"
	"ptzcon/internal/session"
	"ptzcon/internal/transport"
	"ptzcon/util"
)

// DefaultPrompt is shown before every line of input.
const DefaultPrompt = "Enter hex command (help for info): "

// Outcome is the result of one loop iteration.
type Outcome int

const (
	OutcomeContinue   Outcome = iota // nothing sent: blank line, help, show
	OutcomeRejected                  // malformed frame or unknown preset
	OutcomeSendFailed                // transport refused the frame
	OutcomeSent                      // frame delivered and recorded
	OutcomeExit                      // exit/quit typed
	OutcomeFault                     // unexpected fault, recovered
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeRejected:
		return "rejected"
	case OutcomeSendFailed:
		return "send-failed"
	case OutcomeSent:
		return "sent"
	case OutcomeExit:
		return "exit"
	case OutcomeFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Config wires a Console to its collaborators.  Transport and Reader are
// required; everything else has a default.
type Config struct {
	Transport transport.Transport
	Reader    LineReader

	Presets     *preset.Table // default: preset.Default()
	History     history.Store // default: in-memory store
	HistoryPath string        // empty disables persistence
	Prompt      string        // default: DefaultPrompt
	Quiet       bool          // skip the help banner at start

	Stdout  io.Writer          // default: os.Stdout
	Logger  *util.Logger       // default: discard
	Metrics *metrics.Collector // nil is fine
}

// Console runs one interactive session.
type Console struct {
	transport   transport.Transport
	reader      LineReader
	presets     *preset.Table
	store       history.Store
	historyPath string
	prompt      string
	quiet       bool
	out         io.Writer
	logger      *util.Logger
	metrics     *metrics.Collector

	session *session.Session
	loaded  []string // history read at startup
}

// New validates cfg and returns a Console ready to Run.
func New(cfg Config) (*Console, error) {
	if cfg.Transport == nil {
		return nil, errors.New("console: transport is required")
	}
	if cfg.Reader == nil {
		return nil, errors.New("console: line reader is required")
	}

	c := &Console{
		transport:   cfg.Transport,
		reader:      cfg.Reader,
		presets:     cfg.Presets,
		store:       cfg.History,
		historyPath: cfg.HistoryPath,
		prompt:      cfg.Prompt,
		quiet:       cfg.Quiet,
		out:         cfg.Stdout,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		session:     session.New(),
	}
	if c.presets == nil {
		c.presets = preset.Default()
	}
	if c.store == nil {
		c.store = history.NewMemoryStore()
	}
	if c.prompt == "" {
		c.prompt = DefaultPrompt
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	return c, nil
}

// Session exposes the session state, mainly for tests.
func (c *Console) Session() *session.Session { return c.session }

// Run loads history, loops until the session terminates, then flushes
// history and closes the transport.  It returns nil for an orderly end
// (exit, interrupt, end of input, cancelled ctx) and the read error
// otherwise.  Cleanup has already happened either way.
func (c *Console) Run(ctx context.Context) (err error) {
	defer c.shutdown()

	c.loadHistory()
	if !c.quiet {
		printHelp(c.out)
	}

	for c.session.Running() {
		line, rerr := c.readLine(ctx)
		if rerr != nil {
			c.session.Stop()
			err = c.readFailed(rerr)
			break
		}
		out := c.Step(line)
		c.logger.Debug("input %q -> %s", line, out)
	}
	return err
}

// Step processes one line of input and reports what happened.  A panic
// anywhere in the iteration is recovered and reported as OutcomeFault.
func (c *Console) Step(line string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Error: %v", r)
			c.metrics.Fault(fmt.Sprint(r))
			out = OutcomeFault
		}
	}()

	cmd := Classify(line)
	var text string

	switch cmd.Kind {
	case KindEmpty:
		return OutcomeContinue

	case KindControl:
		switch cmd.Control {
		case ControlExit:
			c.session.Stop()
			return OutcomeExit
		case ControlHelp:
			printHelp(c.out)
		case ControlShowPresets:
			printPresets(c.out, c.presets)
		}
		return OutcomeContinue

	case KindPreset:
		resolved, err := c.presets.Resolve(cmd.Name)
		if err != nil {
			return c.reject(err, fmt.Sprintf("Preset '%s' not found. Use 'show' to see available presets.", cmd.Name))
		}
		fmt.Fprintf(c.out, "Using preset: %s\n", resolved)
		text = resolved

	case KindRaw:
		text = cmd.Text
	}

	canonical, err := frame.Validate(text)
	if err != nil {
		return c.reject(err, "Invalid hex format. Please use only hex characters (0-9, A-F).")
	}
	return c.send(text, canonical)
}

// reject tells the operator why the input was refused.  Typing mistakes
// are only logged at verbose level; anything else is a warning.
func (c *Console) reject(err error, msg string) Outcome {
	fmt.Fprintln(c.out, msg)
	if errors.IsOperatorError(err) {
		c.logger.Verbose("%v", err)
	} else {
		c.logger.Warn("%v", err)
	}
	c.metrics.InputRejected()
	return OutcomeRejected
}

// send delivers canonical and, on success, records the accepted text.
func (c *Console) send(text, canonical string) Outcome {
	if err := c.deliver(canonical); err != nil {
		fmt.Fprintln(c.out, "Failed to send command.")
		c.logger.Warn("send %s: %v", canonical, err)
		c.metrics.FrameFailed(err.Error())
		return OutcomeSendFailed
	}

	c.session.Record(text)
	c.reader.AppendHistory(text)
	c.metrics.FrameSent(len(canonical) / 2)
	c.logger.Verbose("sent %s", canonical)
	return OutcomeSent
}

// deliver calls the transport, turning a panic into an ordinary send
// failure.
func (c *Console) deliver(canonical string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: transport panic: %v", errors.ErrSendFailed, r)
		}
	}()
	return c.transport.SendFrame(canonical)
}

type readResult struct {
	line string
	err  error
}

// readLine blocks for the next line or until ctx is done.  The read
// itself runs on its own goroutine so a signal can end the session
// while the operator is idle at the prompt.
func (c *Console) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.ErrInterrupted
	}

	ch := make(chan readResult, 1)
	go func() {
		line, err := c.reader.ReadLine(c.prompt)
		ch <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", errors.ErrInterrupted
	case r := <-ch:
		return r.line, r.err
	}
}

// readFailed maps a read error to Run's return value.
func (c *Console) readFailed(err error) error {
	switch {
	case errors.Is(err, errors.ErrInterrupted):
		fmt.Fprintln(c.out, "\nExiting...")
		return nil
	case errors.Is(err, io.EOF):
		fmt.Fprintln(c.out)
		return nil
	default:
		c.logger.Error("read input: %v", err)
		return fmt.Errorf("read input: %w", err)
	}
}

// ── history & shutdown ───────────────────────────────────────────────

func (c *Console) loadHistory() {
	if c.historyPath == "" {
		return
	}
	lines, err := c.store.Load(c.historyPath)
	if err != nil {
		c.logger.Warn("Failed to load command history: %v", err)
		return
	}
	c.loaded = lines
	for _, line := range lines {
		c.reader.AppendHistory(line)
	}
	c.logger.Verbose("loaded %d history entries from %s", len(lines), c.historyPath)
}

func (c *Console) flushHistory() {
	if c.historyPath == "" {
		return
	}
	lines := append(append([]string(nil), c.loaded...), c.session.History()...)
	if err := c.store.Save(c.historyPath, lines); err != nil {
		c.logger.Warn("Failed to save command history: %v", err)
		return
	}
	c.logger.Verbose("saved %d history entries to %s", len(lines), c.historyPath)
}

func (c *Console) closeTransport() {
	if err := c.transport.Close(); err != nil {
		c.logger.Warn("close transport: %v", err)
	}
}

func (c *Console) closeReader() {
	if err := c.reader.Close(); err != nil {
		c.logger.Verbose("close line reader: %v", err)
	}
}

// shutdown runs every cleanup step even if an earlier one fails or
// panics.
//
// After a cancelled ctx the ReadLine goroutine may still be blocked in
// the line editor.  The reader is closed anyway: liner's Close only
// restores the saved terminal mode, and skipping it would leave the
// operator's terminal raw after exit.  The stranded read ends with the
// process.
func (c *Console) shutdown() {
	c.session.Stop()
	c.guard("restore terminal", c.closeReader)
	c.guard("history flush", c.flushHistory)
	c.guard("transport close", c.closeTransport)
	if c.logger.Level() >= util.LogDebug {
		c.logger.Debug("session stats:\n%s", c.metrics.JSON())
	}
	fmt.Fprintln(c.out, "Session ended.")
}

func (c *Console) guard(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("%s: %v", what, r)
		}
	}()
	fn()
}
