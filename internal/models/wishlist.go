package models

import (
	"time"

	"github.com/google/uuid"
)

// Wishlist is a named, ordered collection of StoredMovies. Entries are not
// deduplicated: adding the same movie twice produces two independent
// copies.
type Wishlist struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	CreatedAt time.Time     `db:"createdAt" json:"createdAt"`
	Name      string        `db:"name" json:"name"`
	Movies    []StoredMovie `json:"movies"`
}

// NewWishlist creates an empty named folder.
func NewWishlist(name string) Wishlist {
	return Wishlist{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Name:      name,
	}
}

// AddMovie appends an independent copy of the movie and returns it. The
// folder never holds a reference shared with another parent.
func (w *Wishlist) AddMovie(m StoredMovie) StoredMovie {
	c := m.Clone()
	w.Movies = append(w.Movies, c)
	return c
}

// RemoveMovie removes the first entry whose id matches. It reports whether
// an entry was removed; the list shrinks by exactly one on success.
func (w *Wishlist) RemoveMovie(id uuid.UUID) bool {
	for i, m := range w.Movies {
		if m.ID == id {
			w.Movies = append(w.Movies[:i], w.Movies[i+1:]...)
			return true
		}
	}
	return false
}

// Rename changes the folder's display name in place.
func (w *Wishlist) Rename(name string) {
	w.Name = name
}

// RepresentativePoster returns the first non-empty poster URL among the
// folder's movies in list order, or nil if none qualify.
func (w *Wishlist) RepresentativePoster() *string {
	for _, m := range w.Movies {
		if m.PosterURL != nil && *m.PosterURL != "" {
			return m.PosterURL
		}
	}
	return nil
}
