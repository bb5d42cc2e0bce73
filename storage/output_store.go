package storage

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"time"
)

const lockTimeout = 5 * time.Second

// Fixed relative paths of the output tree, consumed by downstream tools.
const (
	FileCompleteMetadata = "complete-metadata.json"
	FileUploadBatch      = "batch/upload-batch.json"
	FilePlaylistConfig   = "playlists/playlist-config.json"
	FileSEOAnalysis      = "seo-analysis.json"
	FileCSVExport        = "video-metadata-export.csv"
	DirDescriptions      = "descriptions"
)

// OutputStore writes pipeline outputs under a single root directory
// (conventionally generated/metadata). The root is locked for the lifetime
// of the store so concurrent runs cannot interleave partial trees.
type OutputStore struct {
	root string
	lock *FileLock
}

// NewOutputStore creates the output root if needed and acquires its lock.
func NewOutputStore(root string) (*OutputStore, error) {
	s := &OutputStore{
		root: root,
		lock: NewFileLock(filepath.Join(root, "run")),
	}

	// Materialize the root before locking inside it.
	w, err := NewAtomicWriter(filepath.Join(root, ".keep"))
	if err != nil {
		return nil, &StorageError{Op: "write", Entity: "root", ID: root, Err: err}
	}
	if err := w.Commit(); err != nil {
		return nil, &StorageError{Op: "write", Entity: "root", ID: root, Err: err}
	}

	if err := s.lock.Lock(lockTimeout); err != nil {
		return nil, err
	}
	return s, nil
}

// Root returns the store's root directory.
func (s *OutputStore) Root() string { return s.root }

// Path resolves a relative output path against the root.
func (s *OutputStore) Path(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// WriteJSON atomically writes v as indented JSON at the relative path.
func (s *OutputStore) WriteJSON(rel string, v any) error {
	w, err := NewAtomicWriter(s.Path(rel))
	if err != nil {
		return &StorageError{Op: "write", Entity: "json", ID: rel, Err: err}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		w.Abort()
		return &StorageError{Op: "write", Entity: "json", ID: rel, Err: err}
	}
	if err := w.Commit(); err != nil {
		return &StorageError{Op: "write", Entity: "json", ID: rel, Err: err}
	}
	return nil
}

// WriteText atomically writes a text output at the relative path.
func (s *OutputStore) WriteText(rel, text string) error {
	w, err := NewAtomicWriter(s.Path(rel))
	if err != nil {
		return &StorageError{Op: "write", Entity: "text", ID: rel, Err: err}
	}
	if _, err := w.Write([]byte(text)); err != nil {
		w.Abort()
		return &StorageError{Op: "write", Entity: "text", ID: rel, Err: err}
	}
	if err := w.Commit(); err != nil {
		return &StorageError{Op: "write", Entity: "text", ID: rel, Err: err}
	}
	return nil
}

// WriteDescription writes one per-video description file under
// descriptions/. The name must be a bare basename; path separators are
// rejected as invalid input.
func (s *OutputStore) WriteDescription(name, text string) error {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return &StorageError{Op: "write", Entity: "description", ID: name, Err: ErrInvalidInput}
	}
	return s.WriteText(DirDescriptions+"/"+name+".txt", text)
}

// Close releases the output tree lock.
func (s *OutputStore) Close() error {
	return s.lock.Unlock()
}
