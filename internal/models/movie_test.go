package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoredMovieMintsIdentity(t *testing.T) {
	year := "2003"
	rec := MovieRecord{
		ID:          uuid.New(),
		Title:       "올드보이",
		Directors:   []string{"박찬욱"},
		Actors:      []string{"최민식", "유지태"},
		ReleaseYear: &year,
		Genres:      []string{"드라마", "스릴러"},
		Keywords:    []string{"복수"},
	}

	stored := NewStoredMovie(rec)

	assert.NotEqual(t, rec.ID, stored.ID, "the record id is never reused")
	assert.Equal(t, rec.Title, stored.Title)
	assert.Equal(t, rec.Directors, stored.Directors)
	assert.Equal(t, rec.Actors, stored.Actors)
}

func TestNewStoredMovieIsIndependent(t *testing.T) {
	rec := MovieRecord{
		ID:        uuid.New(),
		Title:     "올드보이",
		Directors: []string{"박찬욱"},
		Genres:    []string{"드라마"},
	}

	stored := NewStoredMovie(rec)
	rec.Directors[0] = "changed"
	rec.Genres[0] = "changed"

	assert.Equal(t, []string{"박찬욱"}, stored.Directors)
	assert.Equal(t, []string{"드라마"}, stored.Genres)
}

func TestCloneMintsIdentity(t *testing.T) {
	poster := "https://img/p.jpg"
	original := StoredMovie{
		ID:        uuid.New(),
		Title:     "올드보이",
		Actors:    []string{"최민식"},
		PosterURL: &poster,
	}

	clone := original.Clone()

	assert.NotEqual(t, original.ID, clone.ID)
	assert.Equal(t, original.Title, clone.Title)

	clone.Actors[0] = "changed"
	assert.Equal(t, []string{"최민식"}, original.Actors)

	require.NotNil(t, clone.PosterURL)
	*clone.PosterURL = "changed"
	assert.Equal(t, "https://img/p.jpg", *original.PosterURL)
}
