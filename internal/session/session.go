// Package session holds the mutable state of one console session: the
// running flag and the commands accepted so far.
//
// A session is owned by the single console loop goroutine; it is not
// safe for concurrent use and needs no locking.
package session

// Session is created running and stopped exactly once, by an exit
// command, an interrupt, or a read failure.
type Session struct {
	running bool
	history []string
}

// New returns a running session with an empty history.
func New() *Session {
	return &Session{running: true}
}

// Running reports whether the loop should keep prompting.
func (s *Session) Running() bool { return s.running }

// Stop moves the session to its terminal state.
func (s *Session) Stop() { s.running = false }

// Record appends an accepted command.
func (s *Session) Record(line string) {
	s.history = append(s.history, line)
}

// History returns a copy of the commands accepted this session, oldest
// first.
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

// Len returns the number of accepted commands.
func (s *Session) Len() int { return len(s.history) }
