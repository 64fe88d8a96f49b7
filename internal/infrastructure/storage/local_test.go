package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestLocal_SaveAndRemove(t *testing.T) {
	t.Parallel()

	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	owner, doc := uuid.New(), uuid.New()
	path, err := s.Save(context.Background(), owner, doc, "My Resume.PDF", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != doc.String()+".pdf" {
		t.Fatalf("unexpected path %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "%PDF-1.4" {
		t.Fatalf("unexpected content %q (%v)", b, err)
	}

	if err := s.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(path); err != nil {
		t.Fatalf("second remove must be a no-op, got %v", err)
	}
}

func TestLocal_EmptyFile(t *testing.T) {
	t.Parallel()

	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := s.Save(context.Background(), uuid.New(), uuid.New(), "a.docx", strings.NewReader("")); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}
