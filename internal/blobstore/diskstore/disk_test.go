package diskstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/discochess/enginemetrics/internal/blobstore"
)

func TestStore_WriteRead(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	data := []byte("# Report\nbody")
	if err := s.Write(ctx, "users/anon/1_report.md", data); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "users", "anon", "1_report.md")); err != nil {
		t.Errorf("file not written to expected path: %v", err)
	}

	got, err := s.Read(ctx, "users/anon/1_report.md")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Read() = %q, want %q", got, data)
	}
}

func TestStore_ReadNotFound(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = s.Read(context.Background(), "missing.pgn")
	if !errors.Is(err, blobstore.ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
}

func TestStore_List(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	for _, name := range []string{"games/b.pgn", "games/a.pgn", "notes.md"} {
		if err := s.Write(ctx, name, []byte("x")); err != nil {
			t.Fatalf("Write(%q) error = %v", name, err)
		}
	}

	got, err := s.List(ctx, "games/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[0] != "games/a.pgn" || got[1] != "games/b.pgn" {
		t.Errorf("List() = %v, want [games/a.pgn games/b.pgn]", got)
	}

	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List(\"\") = %v, want 3 names", all)
	}
}

func TestStore_RejectsEscapingNames(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, name := range []string{"../outside", "/etc/passwd", ""} {
		if err := s.Write(context.Background(), name, nil); err == nil {
			t.Errorf("Write(%q) should fail", name)
		}
	}
}

func TestNew_InvalidPath(t *testing.T) {
	if _, err := New("/nonexistent/path"); err == nil {
		t.Error("New() with invalid path should return error")
	}
}

func TestNew_NotDirectory(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "test")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()

	if _, err := New(f.Name()); err == nil {
		t.Error("New() with file path should return error")
	}
}
