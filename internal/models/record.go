// package models defines the data model for the record collection manager
package models

import (
	"fmt"
	"strings"
	"time"
)

// Record represents a single music record in the collection.
//
// ID and the timestamps are assigned by the store on creation; callers adding
// a record leave them zero.
type Record struct {
	ID        string    `json:"id"`
	Artist    string    `json:"artist"`
	Title     string    `json:"title"`
	Year      int       `json:"year,omitempty"`
	Format    string    `json:"format,omitempty"`
	CoverURL  string    `json:"cover_url,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Owned     bool      `json:"owned"`
	Wishlist  bool      `json:"wishlist"`
	Favorite  bool      `json:"favorite"`
	Ordered   bool      `json:"ordered"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks that the record carries the minimum data every entry needs.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Artist) == "" {
		return fmt.Errorf("record artist is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("record title is required")
	}
	if r.Year < 0 {
		return fmt.Errorf("record year must not be negative")
	}
	return nil
}

// Label returns the display label "Artist – Title" used by CLI and TUI output.
func (r Record) Label() string {
	return fmt.Sprintf("%s – %s", r.Artist, r.Title)
}

// RecordUpdate lists exactly which record attributes may change in a partial
// update. Nil fields are left untouched.
type RecordUpdate struct {
	Artist   *string
	Title    *string
	Year     *int
	Format   *string
	CoverURL *string
	Notes    *string
	Owned    *bool
	Wishlist *bool
	Favorite *bool
	Ordered  *bool
}

// IsZero reports whether the update changes nothing.
func (u RecordUpdate) IsZero() bool {
	return u.Artist == nil && u.Title == nil && u.Year == nil &&
		u.Format == nil && u.CoverURL == nil && u.Notes == nil &&
		u.Owned == nil && u.Wishlist == nil && u.Favorite == nil &&
		u.Ordered == nil
}

// Apply returns a copy of rec with all non-nil update fields applied.
// ID and CreatedAt are never touched by an update.
func (u RecordUpdate) Apply(rec Record) Record {
	if u.Artist != nil {
		rec.Artist = *u.Artist
	}
	if u.Title != nil {
		rec.Title = *u.Title
	}
	if u.Year != nil {
		rec.Year = *u.Year
	}
	if u.Format != nil {
		rec.Format = *u.Format
	}
	if u.CoverURL != nil {
		rec.CoverURL = *u.CoverURL
	}
	if u.Notes != nil {
		rec.Notes = *u.Notes
	}
	if u.Owned != nil {
		rec.Owned = *u.Owned
	}
	if u.Wishlist != nil {
		rec.Wishlist = *u.Wishlist
	}
	if u.Favorite != nil {
		rec.Favorite = *u.Favorite
	}
	if u.Ordered != nil {
		rec.Ordered = *u.Ordered
	}
	return rec
}

// ImportMode selects how a bulk import combines with the existing collection.
type ImportMode string

const (
	// ImportMerge unions the import with the collection by identifier.
	// On collision the incoming record wins.
	ImportMerge ImportMode = "merge"

	// ImportReplace discards the existing collection entirely.
	ImportReplace ImportMode = "replace"
)

// ParseImportMode converts a string flag value into an ImportMode.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(s))) {
	case ImportMerge:
		return ImportMerge, nil
	case ImportReplace:
		return ImportReplace, nil
	default:
		return "", fmt.Errorf("invalid import mode %q (want %q or %q)", s, ImportMerge, ImportReplace)
	}
}
