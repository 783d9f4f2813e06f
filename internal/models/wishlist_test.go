package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movie(title string, poster string) StoredMovie {
	m := StoredMovie{
		ID:    uuid.New(),
		Title: title,
	}
	if poster != "" {
		m.PosterURL = &poster
	}
	return m
}

func TestAddMovieCopies(t *testing.T) {
	w := NewWishlist("watch soon")
	src := movie("Oldboy", "https://img/poster.jpg")

	added := w.AddMovie(src)

	require.Len(t, w.Movies, 1)
	assert.NotEqual(t, src.ID, added.ID, "folder entry must not share the source identity")
	assert.Equal(t, src.Title, added.Title)
}

func TestAddMovieAllowsDuplicates(t *testing.T) {
	w := NewWishlist("watch soon")
	src := movie("Oldboy", "")

	first := w.AddMovie(src)
	second := w.AddMovie(src)

	assert.Len(t, w.Movies, 2)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRemoveMovie(t *testing.T) {
	w := NewWishlist("watch soon")
	a := w.AddMovie(movie("A", ""))
	b := w.AddMovie(movie("B", ""))
	c := w.AddMovie(movie("C", ""))

	removed := w.RemoveMovie(b.ID)

	require.True(t, removed)
	require.Len(t, w.Movies, 2, "removal shrinks the list by exactly one")
	assert.Equal(t, a.ID, w.Movies[0].ID)
	assert.Equal(t, c.ID, w.Movies[1].ID)
}

func TestRemoveMovieMissing(t *testing.T) {
	w := NewWishlist("watch soon")
	w.AddMovie(movie("A", ""))

	assert.False(t, w.RemoveMovie(uuid.New()))
	assert.Len(t, w.Movies, 1)
}

func TestRemoveMovieOnlyFirstMatch(t *testing.T) {
	w := NewWishlist("watch soon")
	m := movie("A", "")
	w.Movies = []StoredMovie{m, m}

	require.True(t, w.RemoveMovie(m.ID))
	assert.Len(t, w.Movies, 1)
}

func TestRepresentativePoster(t *testing.T) {
	w := NewWishlist("watch soon")
	w.AddMovie(movie("no poster", ""))
	w.AddMovie(movie("with poster", "https://img/first.jpg"))
	w.AddMovie(movie("later poster", "https://img/second.jpg"))

	poster := w.RepresentativePoster()
	require.NotNil(t, poster)
	assert.Equal(t, "https://img/first.jpg", *poster)
}

func TestRepresentativePosterNone(t *testing.T) {
	w := NewWishlist("watch soon")
	assert.Nil(t, w.RepresentativePoster())

	w.AddMovie(movie("no poster", ""))
	assert.Nil(t, w.RepresentativePoster())
}

func TestRename(t *testing.T) {
	w := NewWishlist("before")
	w.Rename("after")
	assert.Equal(t, "after", w.Name)
}
