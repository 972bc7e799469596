package history

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFileStore_MissingFile(t *testing.T) {
	s := &FileStore{}
	lines, err := s.Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected empty history, got %v", lines)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".camera_history")
	s := &FileStore{}

	want := []string{
		"8101044700000000FF",
		"81 01 04 01 02 FF",
		"8101041100FF",
		"8101044700000000FF", // duplicates are kept
	}
	if err := s.Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip:\n got %q\nwant %q", got, want)
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h")
	s := &FileStore{}

	if err := s.Save(path, []string{"a1", "b2", "c3"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(path, []string{"d4"}); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Load(path)
	if !reflect.DeepEqual(got, []string{"d4"}) {
		t.Errorf("got %q", got)
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the history file, found %d entries", len(entries))
	}
}

func TestFileStore_Limit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h")
	s := &FileStore{Limit: 3}

	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, fmt.Sprintf("%02X", i))
	}
	if err := s.Save(path, lines); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Load(path)
	if want := []string{"07", "08", "09"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "h")
	if err := (&FileStore{}).Save(path, []string{"81FF"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("history file not created: %v", err)
	}
}

func TestFileStore_SaveFailure(t *testing.T) {
	// A regular file where the parent directory should be.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	err := (&FileStore{}).Save(filepath.Join(blocker, "h"), []string{"81FF"})
	if err == nil {
		t.Fatal("expected error when parent is a file")
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	if err := m.Save("p", []string{"81FF"}); err != nil {
		t.Fatal(err)
	}
	got, err := m.Load("p")
	if err != nil || !reflect.DeepEqual(got, []string{"81FF"}) {
		t.Fatalf("Load = %q, %v", got, err)
	}

	// Returned slice is a copy.
	got[0] = "changed"
	again, _ := m.Load("p")
	if again[0] != "81FF" {
		t.Error("MemoryStore leaked its internal slice")
	}

	m.SaveErr = fmt.Errorf("disk full")
	if err := m.Save("p", nil); err == nil {
		t.Error("expected SaveErr")
	}
}

func TestRead_SkipsBlankLines(t *testing.T) {
	got, err := Read(strings.NewReader("81FF\r\n\n   \n8101\n"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"81FF", "8101"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWrite_SkipsMultiline(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, []string{"81FF", "bad\nentry", "8101"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("wrote %d entries, want 2", n)
	}
	if buf.String() != "81FF\n8101\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestTrim(t *testing.T) {
	in := []string{"a", "b", "c"}
	tests := []struct {
		limit int
		want  []string
	}{
		{0, in},
		{-1, in},
		{5, in},
		{3, in},
		{2, []string{"b", "c"}},
		{1, []string{"c"}},
	}
	for _, tt := range tests {
		if got := Trim(in, tt.limit); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Trim(limit=%d) = %q, want %q", tt.limit, got, tt.want)
		}
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/operator")
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join("/home/operator", ".camera_history") {
		t.Errorf("DefaultPath = %q", got)
	}
}

func TestWriteAtomic_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "h")
	if err := os.WriteFile(path, []byte("8101040102FF\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := WriteAtomic(path, func(w io.Writer) error {
		fmt.Fprintln(w, "partial")
		return fmt.Errorf("disk full")
	})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected write error, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "8101040102FF\n" {
		t.Errorf("previous history clobbered: %q", data)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary file left behind: %d entries", len(entries))
	}
}

func TestWriteAtomic_Mode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h")
	if err := WriteAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "81FF\n")
		return err
	}); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", fi.Mode().Perm())
	}
}
