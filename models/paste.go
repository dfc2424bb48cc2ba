package models

import (
	"time"
)

// Paste is one entry in the index: everything known about a paste except
// its content, which lives in its own file keyed by ID.
type Paste struct {
	ID            string     `json:"id"`
	Title         string     `json:"title,omitempty"`
	Language      string     `json:"language,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	BurnAfterRead bool       `json:"burn_after_read"`
	Size          int64      `json:"size"`
}

// IsExpired reports whether the paste's expiry has passed. A paste whose
// ExpiresAt is not after the current instant counts as expired, so an
// expiry of zero hours is dead on arrival.
func (p *Paste) IsExpired() bool {
	if p.ExpiresAt == nil {
		return false
	}
	return !time.Now().Before(*p.ExpiresAt)
}

// DisplayTitle returns the title to show for the paste, falling back to
// the ID for untitled pastes.
func (p *Paste) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.ID
}
