package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrValidation marks user-input rejections (out-of-range rating, empty
// layout, and so on). Callers report it inline and persist nothing.
var ErrValidation = errors.New("validation failed")

// Rating bounds enforced at the service boundary. The column itself is a
// plain integer; out-of-range values are rejected before they reach it.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is one watched-movie journal entry. It owns exactly one
// StoredMovie and its ordered custom fields; deleting the review deletes
// both.
type Review struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	CreatedAt     time.Time     `db:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `db:"updatedAt" json:"updatedAt"`
	Movie         StoredMovie   `json:"movie"`
	ReviewText    string        `db:"reviewText" json:"reviewText"`
	Rating        int           `db:"rating" json:"rating"`
	WatchDate     time.Time     `db:"watchDate" json:"watchDate"`
	WatchLocation string        `db:"watchLocation" json:"watchLocation"`
	Friends       string        `db:"friends" json:"friends"`
	CustomFields  []CustomField `json:"customFields,omitempty"`
}

// CustomField is a user-defined name/value pair on one review. The review
// owns the field; ReviewID is a lookup back-reference only.
type CustomField struct {
	ID       uuid.UUID `db:"id" json:"id"`
	ReviewID uuid.UUID `db:"reviewId" json:"reviewId"`
	Name     string    `db:"name" json:"name"`
	Value    string    `db:"value" json:"value"`
}

// ValidateRating rejects ratings outside [MinRating, MaxRating].
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: rating %d outside [%d,%d]", ErrValidation, rating, MinRating, MaxRating)
	}
	return nil
}

// ReviewSort selects the ordering of a review listing.
type ReviewSort int

const (
	SortByWatchDate ReviewSort = iota
	SortByRating
	SortByCreated
)

// ParseReviewSort maps the query-parameter form to a ReviewSort.
func ParseReviewSort(s string) (ReviewSort, error) {
	switch s {
	case "", "watchDate":
		return SortByWatchDate, nil
	case "rating":
		return SortByRating, nil
	case "created":
		return SortByCreated, nil
	default:
		return 0, fmt.Errorf("%w: unknown sort %q", ErrValidation, s)
	}
}

// CreateReviewInput is the request body for saving a review. The movie is
// supplied as a decoded record; the service mints the stored copy.
type CreateReviewInput struct {
	Movie         MovieRecord   `json:"movie"`
	ReviewText    string        `json:"reviewText"`
	Rating        int           `json:"rating"`
	WatchDate     string        `json:"watchDate"`
	WatchLocation string        `json:"watchLocation"`
	Friends       string        `json:"friends"`
	CustomFields  []CustomField `json:"customFields,omitempty"`
}

// UpdateReviewInput carries the updatable review fields; nil means leave
// as-is.
type UpdateReviewInput struct {
	ReviewText    *string `json:"reviewText,omitempty"`
	Rating        *int    `json:"rating,omitempty"`
	WatchDate     *string `json:"watchDate,omitempty"`
	WatchLocation *string `json:"watchLocation,omitempty"`
	Friends       *string `json:"friends,omitempty"`
}

// ListReviewsInput filters and orders a review listing. Year/Month of zero
// means no calendar filter.
type ListReviewsInput struct {
	Sort  ReviewSort
	Year  int
	Month time.Month
}
