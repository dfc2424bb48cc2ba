package storage

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// ContentStore reads and writes paste bodies, one file per id.
type ContentStore interface {
	// Put saves the content for a new id.
	Put(id string, content []byte) error

	// Get retrieves the content for an id, or ErrNotFound.
	Get(id string) ([]byte, error)

	// Delete removes the content for an id. Already-absent content is
	// treated as success.
	Delete(id string) error

	// Stat reports whether content exists for an id and its size.
	Stat(id string) (exists bool, size int64, err error)
}

// FileContentStore keeps each paste body as a raw file under dir, named by
// its id with no extension.
type FileContentStore struct {
	dir string
}

// NewFileContentStore creates the content directory if needed and returns
// a store rooted there.
func NewFileContentStore(dir string) (*FileContentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageError{Op: "mkdir", Err: err}
	}
	return &FileContentStore{dir: dir}, nil
}

func (s *FileContentStore) path(id string) string {
	return filepath.Join(s.dir, id)
}

func (s *FileContentStore) Put(id string, content []byte) error {
	if err := os.WriteFile(s.path(id), content, 0o644); err != nil {
		log.Printf("[ERROR] content put: failed to write %s: %v", id, err)
		return &StorageError{Op: "put", ID: id, Err: err}
	}
	return nil
}

func (s *FileContentStore) Get(id string) ([]byte, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		log.Printf("[ERROR] content get: failed to read %s: %v", id, err)
		return nil, &StorageError{Op: "get", ID: id, Err: err}
	}
	return data, nil
}

func (s *FileContentStore) Delete(id string) error {
	if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[ERROR] content delete: failed to remove %s: %v", id, err)
		return &StorageError{Op: "delete", ID: id, Err: err}
	}
	return nil
}

func (s *FileContentStore) Stat(id string) (bool, int64, error) {
	info, err := os.Stat(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, 0, nil
		}
		return false, 0, &StorageError{Op: "stat", ID: id, Err: err}
	}
	return true, info.Size(), nil
}
