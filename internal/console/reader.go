package console

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"ptzcon/internal/errors"
	"ptzcon/internal/history"
)

// LineReader supplies operator input one line at a time.
//
// ReadLine returns io.EOF when input is exhausted and
// errors.ErrInterrupted when the operator aborts the prompt (Ctrl-C).
// AppendHistory makes a line available for recall (up-arrow) in the
// current session.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// NewLineReader returns a line editor with history and tab completion
// when in is a terminal, and a plain line scanner otherwise (piped
// input, scripts).
func NewLineReader(in *os.File, out io.Writer, completions []string) LineReader {
	if term.IsTerminal(int(in.Fd())) {
		return NewLinerReader(completions)
	}
	return NewScannerReader(in, out)
}

// ── liner ────────────────────────────────────────────────────────────

type linerReader struct {
	state *liner.State
}

// NewLinerReader takes over the controlling terminal.  Close must be
// called to restore it.
func NewLinerReader(completions []string) LineReader {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	st.SetCompleter(func(line string) (c []string) {
		for _, w := range completions {
			if strings.HasPrefix(w, line) {
				c = append(c, w)
			}
		}
		return
	})
	return &linerReader{state: st}
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		return "", errors.ErrInterrupted
	}
	return line, err
}

func (r *linerReader) AppendHistory(line string) { r.state.AppendHistory(line) }

func (r *linerReader) Close() error { return r.state.Close() }

// ── history in the editor's format ───────────────────────────────────

// HistoryStore returns the store that persists r's history.  A liner
// reader loads and saves through the editor's own ReadHistory and
// WriteHistory; any other reader gets a history.FileStore.  limit caps
// the saved entries (0 = all).
func HistoryStore(r LineReader, limit int) history.Store {
	if lr, ok := r.(*linerReader); ok {
		return &linerStore{state: lr.state, limit: limit}
	}
	return &history.FileStore{Limit: limit}
}

// linerStore is a history.Store backed by a liner.State.  The editor
// itself never holds more than liner.HistoryLimit entries.
type linerStore struct {
	state *liner.State
	limit int
}

// Load reads path through the editor and returns the entries.  The
// editor buffer is left empty; the console appends what it keeps.
func (s *linerStore) Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	s.state.ClearHistory()
	defer s.state.ClearHistory()

	if _, err := s.state.ReadHistory(f); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := s.state.WriteHistory(&buf); err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Save replaces the editor buffer with lines and writes it to path.
func (s *linerStore) Save(path string, lines []string) error {
	var in strings.Builder
	for _, line := range history.Trim(lines, s.limit) {
		if strings.ContainsAny(line, "\r\n") {
			continue
		}
		in.WriteString(line)
		in.WriteByte('\n')
	}

	// ReadHistory keeps repeated entries; AppendHistory would fold them.
	s.state.ClearHistory()
	if _, err := s.state.ReadHistory(strings.NewReader(in.String())); err != nil {
		return err
	}
	return history.WriteAtomic(path, func(w io.Writer) error {
		_, err := s.state.WriteHistory(w)
		return err
	})
}

// ── plain scanner ────────────────────────────────────────────────────

type scannerReader struct {
	sc  *bufio.Scanner
	out io.Writer
}

// NewScannerReader reads newline-terminated lines from in, writing each
// prompt to out (which may be nil).
func NewScannerReader(in io.Reader, out io.Writer) LineReader {
	return &scannerReader{sc: bufio.NewScanner(in), out: out}
}

func (r *scannerReader) ReadLine(prompt string) (string, error) {
	if r.out != nil {
		fmt.Fprint(r.out, prompt)
	}
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *scannerReader) AppendHistory(string) {}

func (r *scannerReader) Close() error { return nil }
