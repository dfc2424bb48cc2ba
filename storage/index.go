package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/quickpaste/quickpaste/models"
)

// IndexStore maintains the id -> metadata mapping. It is the source of
// truth for listing and for expiry/burn decisions.
type IndexStore interface {
	// Upsert inserts or replaces a record and flushes the index.
	Upsert(paste *models.Paste) error

	// Get retrieves a record by id, or ErrNotFound.
	Get(id string) (*models.Paste, error)

	// Exists reports whether a record exists for id.
	Exists(id string) bool

	// Delete removes a record and flushes. Already-absent ids are success.
	Delete(id string) error

	// TakeForBurn atomically claims a burn-after-read record: the record is
	// removed and returned in one critical section, so exactly one caller
	// can claim a given id. Absent or non-burn records yield ErrNotFound.
	TakeForBurn(id string) (*models.Paste, error)

	// List returns all records ordered by creation time, newest first.
	List() []*models.Paste

	// Len returns the number of records.
	Len() int
}

// JSONIndex holds the whole index in memory and rewrites a single JSON
// document after every mutation. Single-process only: one mutex guards
// the map and its flush, nothing coordinates across processes.
type JSONIndex struct {
	path   string
	mu     sync.Mutex
	pastes map[string]*models.Paste
}

// OpenJSONIndex loads the index document at path, or starts empty when the
// file does not exist yet.
func OpenJSONIndex(path string) (*JSONIndex, error) {
	idx := &JSONIndex{
		path:   path,
		pastes: make(map[string]*models.Paste),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return idx, nil
		}
		return nil, &StorageError{Op: "load index", Err: err}
	}
	if err := json.Unmarshal(data, &idx.pastes); err != nil {
		return nil, &StorageError{Op: "parse index", Err: err}
	}
	// Older index files may predate the id field inside each record.
	for id, p := range idx.pastes {
		if p.ID == "" {
			p.ID = id
		}
	}
	return idx, nil
}

// flush rewrites the index document. Callers must hold mu. The write goes
// through a temp file and rename so a crash mid-write cannot tear the index.
func (idx *JSONIndex) flush() error {
	data, err := json.MarshalIndent(idx.pastes, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode index", Err: err}
	}
	tmp := idx.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Printf("[ERROR] index flush: failed to write %s: %v", tmp, err)
		return &StorageError{Op: "flush index", Err: err}
	}
	if err := os.Rename(tmp, idx.path); err != nil {
		log.Printf("[ERROR] index flush: failed to rename %s: %v", tmp, err)
		return &StorageError{Op: "flush index", Err: err}
	}
	return nil
}

func (idx *JSONIndex) Upsert(paste *models.Paste) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.pastes[paste.ID] = paste
	return idx.flush()
}

func (idx *JSONIndex) Get(id string) (*models.Paste, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	p, ok := idx.pastes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (idx *JSONIndex) Exists(id string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	_, ok := idx.pastes[id]
	return ok
}

func (idx *JSONIndex) Delete(id string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, ok := idx.pastes[id]; !ok {
		return nil
	}
	delete(idx.pastes, id)
	return idx.flush()
}

func (idx *JSONIndex) TakeForBurn(id string) (*models.Paste, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	p, ok := idx.pastes[id]
	if !ok || !p.BurnAfterRead {
		return nil, ErrNotFound
	}
	delete(idx.pastes, id)
	// The in-memory map is authoritative for the claim; a flush failure
	// must not hand the record back to a second reader.
	if err := idx.flush(); err != nil {
		log.Printf("[ERROR] index: failed to flush after burning %s: %v", id, err)
	}
	cp := *p
	return &cp, nil
}

func (idx *JSONIndex) List() []*models.Paste {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	out := make([]*models.Paste, 0, len(idx.pastes))
	for _, p := range idx.pastes {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (idx *JSONIndex) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.pastes)
}

// DefaultIndexPath returns the conventional index location under a data dir.
func DefaultIndexPath(dataDir string) string {
	return filepath.Join(dataDir, "index.json")
}

// DefaultContentDir returns the conventional content location under a data dir.
func DefaultContentDir(dataDir string) string {
	return filepath.Join(dataDir, "pastes")
}
