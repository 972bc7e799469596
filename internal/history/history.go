// Package history persists the console's command history between
// sessions.  The on-disk format is one entry per line, the format the
// line editor reads and writes.  FileStore serves sessions without a
// line editor (piped input); an interactive session saves through the
// editor itself, using WriteAtomic.
package history

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store loads and saves an ordered list of past input lines.  Both
// operations are best-effort from the console's point of view: a
// failure is logged and the session carries on.
type Store interface {
	Load(path string) ([]string, error)
	Save(path string, lines []string) error
}

// ── file-backed store ────────────────────────────────────────────────

// FileStore keeps history in a plain text file.  Limit caps the number
// of entries kept on Save (oldest are dropped first); zero means no
// cap.
type FileStore struct {
	Limit int
}

// Load reads path.  A missing file yields an empty history and no
// error.
func (s *FileStore) Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Save overwrites path with lines.  A failed save leaves the previous
// history intact.
func (s *FileStore) Save(path string, lines []string) error {
	return WriteAtomic(path, func(w io.Writer) error {
		_, err := Write(w, Trim(lines, s.Limit))
		return err
	})
}

// WriteAtomic creates path's directory if needed, lets write fill a
// temporary file beside path, and renames it into place with mode 0600.
func WriteAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ── in-memory store ──────────────────────────────────────────────────

// MemoryStore keeps history in process memory, keyed by path.  It is
// the fallback when no home directory is available, and a convenient
// fake in tests.
type MemoryStore struct {
	mu    sync.Mutex
	files map[string][]string

	// LoadErr / SaveErr, when set, are returned instead of touching
	// the map.
	LoadErr error
	SaveErr error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string][]string)}
}

// Load returns a copy of the lines saved under path.
func (m *MemoryStore) Load(path string) ([]string, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.files[path]...), nil
}

// Save replaces the lines stored under path.
func (m *MemoryStore) Save(path string, lines []string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]string)
	}
	m.files[path] = append([]string(nil), lines...)
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────

// Read parses newline-separated history entries, skipping blank lines.
func Read(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}

// Write emits one entry per line.  Embedded newlines would split an
// entry in two on the next Read, so entries containing them are
// skipped.
func Write(w io.Writer, lines []string) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	for _, line := range lines {
		if strings.ContainsAny(line, "\r\n") {
			continue
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// Trim returns the last limit entries of lines.  limit <= 0 returns
// lines unchanged.
func Trim(lines []string, limit int) []string {
	if limit <= 0 || len(lines) <= limit {
		return lines
	}
	return lines[len(lines)-limit:]
}

// DefaultPath returns ~/.camera_history.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".camera_history"), nil
}
