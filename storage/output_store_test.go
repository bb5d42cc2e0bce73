package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOutputStoreWriteJSON(t *testing.T) {
	root := filepath.Join(t.TempDir(), "generated", "metadata")
	s, err := NewOutputStore(root)
	if err != nil {
		t.Fatalf("NewOutputStore: %v", err)
	}
	defer s.Close()

	payload := map[string]int{"total": 91}
	if err := s.WriteJSON(FileCompleteMetadata, payload); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(s.Path(FileCompleteMetadata))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["total"] != 91 {
		t.Errorf("total = %d, want 91", got["total"])
	}
}

func TestOutputStoreCreatesNestedDirs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	s, err := NewOutputStore(root)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.WriteJSON(FileUploadBatch, []string{}); err != nil {
		t.Fatalf("WriteJSON nested: %v", err)
	}
	if _, err := os.Stat(s.Path(FileUploadBatch)); err != nil {
		t.Errorf("nested output missing: %v", err)
	}
}

func TestWriteDescriptionRejectsPathSeparators(t *testing.T) {
	s, err := NewOutputStore(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	for _, name := range []string{"", "../escape", `a\b`} {
		err := s.WriteDescription(name, "text")
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("WriteDescription(%q) err = %v, want ErrInvalidInput", name, err)
		}
	}

	if err := s.WriteDescription("day-01-overview", "hello"); err != nil {
		t.Fatalf("valid description write failed: %v", err)
	}
	data, err := os.ReadFile(s.Path(DirDescriptions + "/day-01-overview.txt"))
	if err != nil || string(data) != "hello" {
		t.Errorf("description content = %q, err %v", data, err)
	}
}

func TestOutputStoreLockExcludesSecondStore(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	s, err := NewOutputStore(root)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewOutputStore(root); !errors.Is(err, ErrLockTimeout) {
		t.Errorf("second store err = %v, want ErrLockTimeout", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	s2, err := NewOutputStore(root)
	if err != nil {
		t.Fatalf("reopen after Close: %v", err)
	}
	s2.Close()
}

func TestAtomicWriterAbortLeavesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.json")
	w, err := NewAtomicWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("partial")); err != nil {
		t.Fatal(err)
	}
	if err := w.Abort(); err != nil {
		t.Fatalf("Abort: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("target should not exist after Abort, stat err = %v", err)
	}
}

func TestAtomicWriterCommitReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.txt")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewAtomicWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("new")); err != nil {
		t.Fatal(err)
	}
	if err := w.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q, want new", data)
	}
}
