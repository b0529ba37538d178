package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ReadsDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge.txt")
	if err := os.WriteFile(path, []byte("INGE LEAN builds industrial automation.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	base, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.Text() != "INGE LEAN builds industrial automation." {
		t.Errorf("unexpected text: %q", base.Text())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge.txt")
	if err := os.WriteFile(path, []byte("   \n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for blank document, got %v", err)
	}
}
