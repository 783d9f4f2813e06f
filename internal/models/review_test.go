package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRating(t *testing.T) {
	for rating := MinRating; rating <= MaxRating; rating++ {
		assert.NoError(t, ValidateRating(rating))
	}

	assert.ErrorIs(t, ValidateRating(0), ErrValidation)
	assert.ErrorIs(t, ValidateRating(6), ErrValidation)
	assert.ErrorIs(t, ValidateRating(-1), ErrValidation)
}

func TestParseReviewSort(t *testing.T) {
	tests := []struct {
		in   string
		want ReviewSort
	}{
		{"", SortByWatchDate},
		{"watchDate", SortByWatchDate},
		{"rating", SortByRating},
		{"created", SortByCreated},
	}
	for _, tt := range tests {
		got, err := ParseReviewSort(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseReviewSort("popularity")
	assert.ErrorIs(t, err, ErrValidation)
}
