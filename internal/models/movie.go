package models

import (
	"time"

	"github.com/google/uuid"
)

// MovieRecord is a transient movie value decoded from the metadata API.
// It is never persisted directly; saving it anywhere goes through
// NewStoredMovie, which mints a fresh identity. Equality is by ID only —
// two records decoded from the same API row are distinct values.
type MovieRecord struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Directors   []string  `json:"directors"`
	Actors      []string  `json:"actors"`
	ReleaseYear *string   `json:"releaseYear,omitempty"`
	PosterURL   *string   `json:"posterUrl,omitempty"`
	StillURL    *string   `json:"stillUrl,omitempty"`
	Genres      []string  `json:"genres"`
	Keywords    []string  `json:"keywords"`
	PlotText    *string   `json:"plotText,omitempty"`
}

// StoredMovie is a persisted, independently owned copy of movie metadata.
// Exactly one review or wishlist entry owns each StoredMovie; the same
// real-world movie saved twice produces two rows with two ids.
type StoredMovie struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CreatedAt   time.Time `db:"createdAt" json:"createdAt"`
	Title       string    `db:"title" json:"title"`
	Directors   []string  `db:"directors" json:"directors"`
	Actors      []string  `db:"actors" json:"actors"`
	ReleaseYear *string   `db:"releaseYear" json:"releaseYear,omitempty"`
	PosterURL   *string   `db:"posterUrl" json:"posterUrl,omitempty"`
	StillURL    *string   `db:"stillUrl" json:"stillUrl,omitempty"`
	Genres      []string  `db:"genres" json:"genres"`
	Keywords    []string  `db:"keywords" json:"keywords"`
	PlotText    *string   `db:"plotText" json:"plotText,omitempty"`
}

// NewStoredMovie copies a decoded record into a StoredMovie with a fresh
// identity. The source record's id is never reused.
func NewStoredMovie(rec MovieRecord) StoredMovie {
	return StoredMovie{
		ID:          uuid.New(),
		CreatedAt:   time.Now(),
		Title:       rec.Title,
		Directors:   cloneStrings(rec.Directors),
		Actors:      cloneStrings(rec.Actors),
		ReleaseYear: cloneStringPtr(rec.ReleaseYear),
		PosterURL:   cloneStringPtr(rec.PosterURL),
		StillURL:    cloneStringPtr(rec.StillURL),
		Genres:      cloneStrings(rec.Genres),
		Keywords:    cloneStrings(rec.Keywords),
		PlotText:    cloneStringPtr(rec.PlotText),
	}
}

// Clone returns an independent copy of the movie under a new identity.
// Used when the same metadata is attached to a second parent, so no two
// collections ever alias one row.
func (m StoredMovie) Clone() StoredMovie {
	c := m
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.Directors = cloneStrings(m.Directors)
	c.Actors = cloneStrings(m.Actors)
	c.Genres = cloneStrings(m.Genres)
	c.Keywords = cloneStrings(m.Keywords)
	c.ReleaseYear = cloneStringPtr(m.ReleaseYear)
	c.PosterURL = cloneStringPtr(m.PosterURL)
	c.StillURL = cloneStringPtr(m.StillURL)
	c.PlotText = cloneStringPtr(m.PlotText)
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
