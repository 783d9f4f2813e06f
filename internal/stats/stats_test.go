package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/minchan-k/cinelog/internal/models"
)

func review(title string, rating int, watchDate string, genres ...string) models.Review {
	date, err := time.Parse("2006-01-02", watchDate)
	if err != nil {
		panic(err)
	}
	return models.Review{
		Movie: models.StoredMovie{
			Title:  title,
			Genres: genres,
		},
		Rating:    rating,
		WatchDate: date,
	}
}

func TestReviewsThisMonth(t *testing.T) {
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)

	reviews := []models.Review{
		review("a", 3, "2024-06-01"),
		review("b", 4, "2024-06-30"),
		review("c", 5, "2024-05-31"),
		review("d", 2, "2023-06-15"), // same month, wrong year
	}

	assert.Equal(t, 2, ReviewsThisMonth(reviews, now))
	assert.Equal(t, 0, ReviewsThisMonth(nil, now))
}

func TestBestRatedSummary(t *testing.T) {
	reviews := []models.Review{
		review("first four", 4, "2024-01-01"),
		review("the five", 5, "2024-01-02"),
		review("second five", 5, "2024-01-03"),
	}

	// Ties break to the first-encountered review.
	assert.Equal(t, "the five ★★★★★", BestRatedSummary(reviews))

	assert.Equal(t, "first four ★★★★☆", BestRatedSummary(reviews[:1]))
}

func TestBestRatedSummaryEmpty(t *testing.T) {
	assert.Equal(t, NoRatingsSentinel, BestRatedSummary(nil))
	assert.Equal(t, NoRatingsSentinel, BestRatedSummary([]models.Review{}))
}

func TestMostRecentSummary(t *testing.T) {
	reviews := []models.Review{
		review("january", 3, "2024-01-01"),
		review("june", 3, "2024-06-15"),
		review("march", 3, "2024-03-10"),
	}

	assert.Equal(t, "june (2024-06-15)", MostRecentSummary(reviews))
	assert.Equal(t, NoReviewsSentinel, MostRecentSummary(nil))
}

func TestMostCommonGenreSummary(t *testing.T) {
	reviews := []models.Review{
		review("a", 3, "2024-01-01", "Drama", "Comedy"),
		review("b", 3, "2024-01-02", "Drama"),
		review("c", 3, "2024-01-03", "Action"),
	}

	assert.Equal(t, "Drama", MostCommonGenreSummary(reviews))
}

func TestMostCommonGenreSummaryTieBreak(t *testing.T) {
	reviews := []models.Review{
		review("a", 3, "2024-01-01", "Comedy", "Drama"),
		review("b", 3, "2024-01-02", "Drama", "Comedy"),
	}

	// Both count 2; Comedy was encountered first in flattening order.
	assert.Equal(t, "Comedy", MostCommonGenreSummary(reviews))
}

func TestMostCommonGenreSummaryNoGenres(t *testing.T) {
	assert.Equal(t, UnknownGenre, MostCommonGenreSummary(nil))
	assert.Equal(t, UnknownGenre, MostCommonGenreSummary([]models.Review{
		review("a", 3, "2024-01-01"),
	}))
}

func TestStarString(t *testing.T) {
	assert.Equal(t, "☆☆☆☆☆", StarString(0))
	assert.Equal(t, "★★★☆☆", StarString(3))
	assert.Equal(t, "★★★★★", StarString(5))

	// Display clamping only; the stored value stays raw.
	assert.Equal(t, "☆☆☆☆☆", StarString(-2))
	assert.Equal(t, "★★★★★", StarString(9))
	assert.Len(t, []rune(StarString(3)), 5)
}

func TestSummariesFixedOrder(t *testing.T) {
	now := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)
	summaries := Summaries(nil, now)

	keys := make([]string, len(summaries))
	for i, s := range summaries {
		keys[i] = s.Key
	}
	assert.Equal(t, []string{"month", "best", "recent", "genre"}, keys)

	assert.Equal(t, "0", summaries[0].Value)
	assert.Equal(t, NoRatingsSentinel, summaries[1].Value)
	assert.Equal(t, NoReviewsSentinel, summaries[2].Value)
	assert.Equal(t, UnknownGenre, summaries[3].Value)
}
