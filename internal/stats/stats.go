// Package stats derives human-readable viewing-habit summaries from the
// full review set. Every function is pure: callers recompute on each
// store change rather than caching snapshots that go stale.
package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/minchan-k/cinelog/internal/models"
)

// Sentinels returned when the review set cannot support a summary.
const (
	NoRatingsSentinel = "No ratings yet"
	NoReviewsSentinel = "No reviews yet"
	UnknownGenre      = "Unknown"
)

// Summary is one entry of the fixed-order summary list. Keys are stable
// so clients can dismiss entries per-session without touching the
// computation.
type Summary struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Value string `json:"value"`
}

// Summaries computes the full fixed-order summary list.
func Summaries(reviews []models.Review, now time.Time) []Summary {
	return []Summary{
		{Key: "month", Title: "Watched this month", Value: fmt.Sprintf("%d", ReviewsThisMonth(reviews, now))},
		{Key: "best", Title: "Best rated", Value: BestRatedSummary(reviews)},
		{Key: "recent", Title: "Most recent", Value: MostRecentSummary(reviews)},
		{Key: "genre", Title: "Favorite genre", Value: MostCommonGenreSummary(reviews)},
	}
}

// ReviewsThisMonth counts reviews whose watch date falls in the same
// calendar month and year as now.
func ReviewsThisMonth(reviews []models.Review, now time.Time) int {
	count := 0
	for _, r := range reviews {
		if r.WatchDate.Year() == now.Year() && r.WatchDate.Month() == now.Month() {
			count++
		}
	}
	return count
}

// BestRatedSummary renders the highest-rated review as title plus a
// five-star string. Ties keep the first-encountered review.
func BestRatedSummary(reviews []models.Review) string {
	if len(reviews) == 0 {
		return NoRatingsSentinel
	}
	best := reviews[0]
	for _, r := range reviews[1:] {
		if r.Rating > best.Rating {
			best = r
		}
	}
	return fmt.Sprintf("%s %s", best.Movie.Title, StarString(best.Rating))
}

// MostRecentSummary renders the review with the latest watch date. Ties
// keep the first-encountered review.
func MostRecentSummary(reviews []models.Review) string {
	if len(reviews) == 0 {
		return NoReviewsSentinel
	}
	recent := reviews[0]
	for _, r := range reviews[1:] {
		if r.WatchDate.After(recent.WatchDate) {
			recent = r
		}
	}
	return fmt.Sprintf("%s (%s)", recent.Movie.Title, recent.WatchDate.Format("2006-01-02"))
}

// MostCommonGenreSummary returns the mode of all genres across all
// reviewed movies. Ties resolve to the genre encountered first in
// flattening order; no genres at all yields the Unknown sentinel.
func MostCommonGenreSummary(reviews []models.Review) string {
	counts := make(map[string]int)
	var order []string
	for _, r := range reviews {
		for _, g := range r.Movie.Genres {
			if counts[g] == 0 {
				order = append(order, g)
			}
			counts[g]++
		}
	}
	if len(order) == 0 {
		return UnknownGenre
	}
	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	for _, g := range order {
		if counts[g] == max {
			return g
		}
	}
	return UnknownGenre
}

// StarString renders a rating as five filled/empty stars. Out-of-range
// ratings are clamped for display only; the model keeps the raw value.
func StarString(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
