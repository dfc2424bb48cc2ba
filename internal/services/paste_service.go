package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/quickpaste/quickpaste/config"
	"github.com/quickpaste/quickpaste/models"
	"github.com/quickpaste/quickpaste/storage"
	"github.com/quickpaste/quickpaste/utils"
)

// Validation errors surfaced to the HTTP layer as 400/413 responses.
var (
	ErrEmptyContent    = errors.New("content cannot be empty")
	ErrContentTooLarge = errors.New("content too large")
	ErrInvalidExpiry   = errors.New("expires_in_hours cannot be negative")
)

// maxIDAttempts bounds collision regeneration. With an 8-char id over a
// 36-char alphabet a single retry is already vanishingly unlikely.
const maxIDAttempts = 10

// PasteService orchestrates the id generator, content store and index
// store to implement create/read/delete/list with expiry and burn
// semantics.
type PasteService struct {
	index   storage.IndexStore
	content storage.ContentStore
	config  *config.Config
}

// NewPasteService creates a new paste service
func NewPasteService(index storage.IndexStore, content storage.ContentStore, config *config.Config) *PasteService {
	return &PasteService{
		index:   index,
		content: content,
		config:  config,
	}
}

// CreatePasteRequest represents a request to create a paste
type CreatePasteRequest struct {
	Content       string
	Language      string
	Title         string
	ExpiresInHrs  *int
	BurnAfterRead bool
}

// GenerateID produces an id not currently present in the index,
// regenerating on collision.
func (s *PasteService) GenerateID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := utils.NewID(s.config.IDLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate id: %w", err)
		}
		if !s.index.Exists(id) {
			return id, nil
		}
		log.Printf("[WARN] id collision on %q, regenerating", id)
	}
	return "", fmt.Errorf("failed to generate unique id after %d attempts", maxIDAttempts)
}

// expiryFor resolves the requested expiry hours against the configured
// default. A nil request means the default applies; zero hours expires the
// paste immediately; negative hours are invalid.
func (s *PasteService) expiryFor(now time.Time, hours *int) (*time.Time, error) {
	if hours == nil {
		if s.config.DefaultExpiry <= 0 {
			return nil, nil
		}
		t := now.Add(s.config.DefaultExpiry)
		return &t, nil
	}
	if *hours < 0 {
		return nil, ErrInvalidExpiry
	}
	t := now.Add(time.Duration(*hours) * time.Hour)
	return &t, nil
}

// Create validates the request, generates an id and stores content then
// index record, in that order, so the index never references a missing file.
func (s *PasteService) Create(req CreatePasteRequest) (*models.Paste, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}
	if int64(len(req.Content)) > s.config.MaxPasteSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", ErrContentTooLarge, len(req.Content), s.config.MaxPasteSize)
	}

	now := time.Now().UTC()
	expiresAt, err := s.expiryFor(now, req.ExpiresInHrs)
	if err != nil {
		return nil, err
	}

	id, err := s.GenerateID()
	if err != nil {
		return nil, err
	}

	paste := &models.Paste{
		ID:            id,
		Title:         req.Title,
		Language:      req.Language,
		CreatedAt:     now,
		ExpiresAt:     expiresAt,
		BurnAfterRead: req.BurnAfterRead,
		Size:          int64(len(req.Content)),
	}

	if err := s.content.Put(id, []byte(req.Content)); err != nil {
		return nil, err
	}
	if err := s.index.Upsert(paste); err != nil {
		// Roll the orphaned content file back so the two stores stay
		// consistent.
		if derr := s.content.Delete(id); derr != nil {
			log.Printf("[ERROR] Create: failed to remove orphaned content %s: %v", id, derr)
		}
		return nil, err
	}

	return paste, nil
}

// Get retrieves a paste's metadata. Expired pastes are deleted on sight and
// reported as not found, indistinguishable from ids that never existed.
func (s *PasteService) Get(id string) (*models.Paste, error) {
	paste, err := s.index.Get(id)
	if err != nil {
		return nil, err
	}
	if paste.IsExpired() {
		s.remove(id)
		return nil, storage.ErrNotFound
	}
	return paste, nil
}

// Read retrieves a paste and its content. A burn-after-read record is
// claimed from the index in a single critical section before the content
// fetch, so concurrent readers racing on the same id cannot both succeed.
func (s *PasteService) Read(id string) (*models.Paste, []byte, error) {
	paste, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	// Cross-check the index against the file on disk. A mismatch means the
	// two stores drifted (manual edits, partial restore); the read still
	// serves whatever the file holds.
	if exists, size, serr := s.content.Stat(id); serr == nil && exists && size != paste.Size {
		log.Printf("[WARN] Read: size mismatch for %s: index=%d actual=%d", id, paste.Size, size)
	}

	if paste.BurnAfterRead {
		claimed, err := s.index.TakeForBurn(id)
		if err != nil {
			// Another reader claimed the record first.
			return nil, nil, err
		}
		content, err := s.content.Get(id)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[INFO] burning paste %s after first read", id)
		if derr := s.content.Delete(id); derr != nil {
			log.Printf("[ERROR] Read: failed to delete burned content %s: %v", id, derr)
		}
		return claimed, content, nil
	}

	content, err := s.content.Get(id)
	if err != nil {
		return nil, nil, err
	}
	return paste, content, nil
}

// Delete removes a paste. Absent ids and already-missing content files are
// treated as success.
func (s *PasteService) Delete(id string) error {
	if err := s.index.Delete(id); err != nil {
		return err
	}
	return s.content.Delete(id)
}

// List returns metadata for all live pastes, newest first. Expired entries
// encountered along the way are deleted.
func (s *PasteService) List() []*models.Paste {
	all := s.index.List()
	live := make([]*models.Paste, 0, len(all))
	for _, p := range all {
		if p.IsExpired() {
			s.remove(p.ID)
			continue
		}
		live = append(live, p)
	}
	return live
}

// Count returns the number of live pastes.
func (s *PasteService) Count() int {
	return len(s.List())
}

// SweepExpired deletes every expired paste and reports how many were
// removed. Called at startup and by the janitor.
func (s *PasteService) SweepExpired() int {
	removed := 0
	for _, p := range s.index.List() {
		if p.IsExpired() {
			s.remove(p.ID)
			removed++
		}
	}
	return removed
}

// remove deletes index entry then content, logging failures rather than
// propagating them: lazy expiry cleanup must not fail the caller's request.
func (s *PasteService) remove(id string) {
	if err := s.index.Delete(id); err != nil {
		log.Printf("[ERROR] remove: failed to delete index entry %s: %v", id, err)
		return
	}
	if err := s.content.Delete(id); err != nil {
		log.Printf("[ERROR] remove: failed to delete content %s: %v", id, err)
	}
}
