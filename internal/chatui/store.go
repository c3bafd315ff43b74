package chatui

import (
	"os"
	"path/filepath"
)

// StorageKey is the fixed key the client state blob lives under. It is
// shared with the browser UI's localStorage entry.
const StorageKey = "remote-chatgpt-state-v1"

// StateStore persists the client state blob between sessions, the
// terminal analog of the browser's localStorage.
type StateStore interface {
	// Load returns the stored blob, ok=false when nothing is stored.
	Load() ([]byte, bool)
	Save(blob []byte) error
}

// FileStore keeps the blob in a JSON file named after the storage key.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, StorageKey+".json")
}

func (s *FileStore) Load() ([]byte, bool) {
	blob, err := os.ReadFile(s.path())
	if err != nil {
		return nil, false
	}
	return blob, true
}

func (s *FileStore) Save(blob []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(), blob, 0o644)
}

// MemStore is an in-memory StateStore for tests.
type MemStore struct {
	blob []byte
	ok   bool
}

func (s *MemStore) Load() ([]byte, bool) { return s.blob, s.ok }

func (s *MemStore) Save(blob []byte) error {
	s.blob = append([]byte(nil), blob...)
	s.ok = true
	return nil
}
