// Package wishfile encodes wishlist folders to and from the portable
// document format used for file-based sharing. The document inlines every
// movie so the receiving side needs nothing but the file.
package wishfile

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/minchan-k/cinelog/internal/models"
)

// ErrImport marks a malformed wishlist document. An import that fails
// with it leaves the destination folder untouched.
var ErrImport = errors.New("wishfile: invalid wishlist document")

// Document is the on-disk wishlist shape.
type Document struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Movies []Movie `json:"movies"`
}

// Movie is the on-disk movie shape, singular field names as the sharing
// format defines them.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Director    []string `json:"director"`
	ReleaseYear *string  `json:"releaseYear,omitempty"`
	Poster      *string  `json:"poster,omitempty"`
	Still       *string  `json:"still,omitempty"`
	Genre       []string `json:"genre"`
	Keyword     []string `json:"keyword"`
	PlotText    *string  `json:"plotText,omitempty"`
	Actor       []string `json:"actor"`
}

// Export serializes the folder, movies fully inlined in list order.
func Export(w models.Wishlist) ([]byte, error) {
	doc := Document{
		ID:     w.ID.String(),
		Name:   w.Name,
		Movies: make([]Movie, len(w.Movies)),
	}
	for i, m := range w.Movies {
		doc.Movies[i] = Movie{
			ID:          m.ID.String(),
			Title:       m.Title,
			Director:    m.Directors,
			ReleaseYear: m.ReleaseYear,
			Poster:      m.PosterURL,
			Still:       m.StillURL,
			Genre:       m.Genres,
			Keyword:     m.Keywords,
			PlotText:    m.PlotText,
			Actor:       m.Actors,
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import parses and fully validates a wishlist document. Any structural
// or type mismatch fails with ErrImport before anything is returned, so
// a caller can only ever apply a complete, valid folder. Movie ids in the
// document are preserved.
func Import(data []byte) (models.Wishlist, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Wishlist{}, fmt.Errorf("%w: %v", ErrImport, err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return models.Wishlist{}, fmt.Errorf("%w: bad folder id %q", ErrImport, doc.ID)
	}
	if doc.Name == "" {
		return models.Wishlist{}, fmt.Errorf("%w: missing folder name", ErrImport)
	}

	folder := models.Wishlist{
		ID:     id,
		Name:   doc.Name,
		Movies: make([]models.StoredMovie, len(doc.Movies)),
	}
	for i, m := range doc.Movies {
		movieID, err := uuid.Parse(m.ID)
		if err != nil {
			return models.Wishlist{}, fmt.Errorf("%w: bad movie id %q", ErrImport, m.ID)
		}
		if m.Title == "" {
			return models.Wishlist{}, fmt.Errorf("%w: movie %d missing title", ErrImport, i)
		}
		keywords := m.Keyword
		if keywords == nil {
			keywords = []string{}
		}
		folder.Movies[i] = models.StoredMovie{
			ID:          movieID,
			Title:       m.Title,
			Directors:   m.Director,
			Actors:      m.Actor,
			ReleaseYear: m.ReleaseYear,
			PosterURL:   m.Poster,
			StillURL:    m.Still,
			Genres:      m.Genre,
			Keywords:    keywords,
			PlotText:    m.PlotText,
		}
	}
	return folder, nil
}

// Replace swaps dst's name and movies for deep copies of src's. The
// destination keeps its own persisted identity.
func Replace(dst *models.Wishlist, src models.Wishlist) {
	dst.Name = src.Name
	dst.Movies = make([]models.StoredMovie, len(src.Movies))
	for i, m := range src.Movies {
		c := m
		c.Directors = append([]string(nil), m.Directors...)
		c.Actors = append([]string(nil), m.Actors...)
		c.Genres = append([]string(nil), m.Genres...)
		c.Keywords = append([]string(nil), m.Keywords...)
		dst.Movies[i] = c
	}
}
