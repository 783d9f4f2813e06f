package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minchan-k/cinelog/internal/models"
)

// ReviewService handles review persistence. A review, its custom fields
// and its stored movie live and die together, so every multi-row
// mutation runs in one transaction.
type ReviewService struct {
	db *pgxpool.Pool
}

// NewReviewService creates a new ReviewService.
func NewReviewService(db *pgxpool.Pool) *ReviewService {
	return &ReviewService{db: db}
}

const reviewSelect = `
	SELECT r.id, r.created_at, r.updated_at, r.review_text, r.rating,
	       r.watch_date, r.watch_location, r.friends,
	       m.id, m.created_at, m.title, m.directors, m.actors, m.release_year,
	       m.poster_url, m.still_url, m.genres, m.keywords, m.plot_text
	FROM reviews r
	JOIN movies m ON m.id = r.movie_id
`

// Create saves a new review. The supplied movie record is copied into a
// stored movie under a fresh identity; the record's own id is discarded.
func (s *ReviewService) Create(ctx context.Context, input models.CreateReviewInput) (*models.Review, error) {
	if err := models.ValidateRating(input.Rating); err != nil {
		return nil, err
	}
	watchDate, err := time.Parse("2006-01-02", input.WatchDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad watch date %q", models.ErrValidation, input.WatchDate)
	}

	movie := models.NewStoredMovie(input.Movie)
	now := time.Now()
	review := models.Review{
		ID:            uuid.New(),
		CreatedAt:     now,
		UpdatedAt:     now,
		Movie:         movie,
		ReviewText:    input.ReviewText,
		Rating:        input.Rating,
		WatchDate:     watchDate,
		WatchLocation: input.WatchLocation,
		Friends:       input.Friends,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertMovie(ctx, tx, movie); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO reviews (id, created_at, updated_at, movie_id, review_text,
		                     rating, watch_date, watch_location, friends)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		review.ID,
		review.CreatedAt,
		review.UpdatedAt,
		movie.ID,
		review.ReviewText,
		review.Rating,
		review.WatchDate,
		review.WatchLocation,
		review.Friends,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}

	review.CustomFields, err = insertFields(ctx, tx, review.ID, input.CustomFields)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &review, nil
}

// Get retrieves one review with its movie and custom fields.
func (s *ReviewService) Get(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	row := s.db.QueryRow(ctx, reviewSelect+" WHERE r.id = $1", id)
	review, err := scanReview(row)
	if err != nil {
		return nil, err
	}

	fields, err := s.fieldsFor(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	review.CustomFields = fields[id]

	return &review, nil
}

// List retrieves reviews ordered per the sort option, optionally
// restricted to one calendar month of watch dates.
func (s *ReviewService) List(ctx context.Context, input models.ListReviewsInput) ([]models.Review, error) {
	query := reviewSelect
	var args []any

	if input.Year != 0 {
		query += " WHERE EXTRACT(YEAR FROM r.watch_date) = $1 AND EXTRACT(MONTH FROM r.watch_date) = $2"
		args = append(args, input.Year, int(input.Month))
	}

	switch input.Sort {
	case models.SortByRating:
		query += " ORDER BY r.rating DESC, r.created_at ASC"
	case models.SortByCreated:
		query += " ORDER BY r.created_at ASC"
	default:
		query += " ORDER BY r.watch_date DESC, r.created_at ASC"
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	var ids []uuid.UUID
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
		ids = append(ids, review.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	fields, err := s.fieldsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		reviews[i].CustomFields = fields[reviews[i].ID]
	}

	return reviews, nil
}

// All returns every review in creation order; the statistics engine
// consumes this as its input set.
func (s *ReviewService) All(ctx context.Context) ([]models.Review, error) {
	return s.List(ctx, models.ListReviewsInput{Sort: models.SortByCreated})
}

// Update applies the non-nil fields of the input to a review.
func (s *ReviewService) Update(ctx context.Context, id uuid.UUID, input models.UpdateReviewInput) (*models.Review, error) {
	query := "UPDATE reviews SET updated_at = NOW()"
	var args []any
	argCount := 0

	if input.ReviewText != nil {
		argCount++
		query += fmt.Sprintf(", review_text = $%d", argCount)
		args = append(args, *input.ReviewText)
	}
	if input.Rating != nil {
		if err := models.ValidateRating(*input.Rating); err != nil {
			return nil, err
		}
		argCount++
		query += fmt.Sprintf(", rating = $%d", argCount)
		args = append(args, *input.Rating)
	}
	if input.WatchDate != nil {
		watchDate, err := time.Parse("2006-01-02", *input.WatchDate)
		if err != nil {
			return nil, fmt.Errorf("%w: bad watch date %q", models.ErrValidation, *input.WatchDate)
		}
		argCount++
		query += fmt.Sprintf(", watch_date = $%d", argCount)
		args = append(args, watchDate)
	}
	if input.WatchLocation != nil {
		argCount++
		query += fmt.Sprintf(", watch_location = $%d", argCount)
		args = append(args, *input.WatchLocation)
	}
	if input.Friends != nil {
		argCount++
		query += fmt.Sprintf(", friends = $%d", argCount)
		args = append(args, *input.Friends)
	}

	argCount++
	query += fmt.Sprintf(" WHERE id = $%d", argCount)
	args = append(args, id)

	result, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}

	return s.Get(ctx, id)
}

// Delete removes a review together with its custom fields and its movie.
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var movieID uuid.UUID
	err = tx.QueryRow(ctx, "SELECT movie_id FROM reviews WHERE id = $1", id).Scan(&movieID)
	if err != nil {
		return err
	}

	// custom_fields cascade off the review row
	if _, err := tx.Exec(ctx, "DELETE FROM reviews WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if err := deleteMovie(ctx, tx, movieID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReplaceFields swaps a review's working field set for the given one,
// preserving input order. Used both for direct edits and for applying a
// layout template.
func (s *ReviewService) ReplaceFields(ctx context.Context, reviewID uuid.UUID, fields []models.CustomField) ([]models.CustomField, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM reviews WHERE id = $1)", reviewID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check review: %w", err)
	}
	if !exists {
		return nil, pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, "DELETE FROM custom_fields WHERE review_id = $1", reviewID); err != nil {
		return nil, fmt.Errorf("failed to clear custom fields: %w", err)
	}

	saved, err := insertFields(ctx, tx, reviewID, fields)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return saved, nil
}

// insertFields persists custom fields for a review in input order. Field
// ids are always minted fresh.
func insertFields(ctx context.Context, q querier, reviewID uuid.UUID, fields []models.CustomField) ([]models.CustomField, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	saved := make([]models.CustomField, len(fields))
	for i, f := range fields {
		saved[i] = models.CustomField{
			ID:       uuid.New(),
			ReviewID: reviewID,
			Name:     f.Name,
			Value:    f.Value,
		}
		_, err := q.Exec(ctx, `
			INSERT INTO custom_fields (id, review_id, position, name, value)
			VALUES ($1, $2, $3, $4, $5)
		`, saved[i].ID, reviewID, i, f.Name, f.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to insert custom field: %w", err)
		}
	}
	return saved, nil
}

// fieldsFor loads the custom fields of the given reviews, keyed by review
// id, each list in position order.
func (s *ReviewService) fieldsFor(ctx context.Context, reviewIDs []uuid.UUID) (map[uuid.UUID][]models.CustomField, error) {
	result := make(map[uuid.UUID][]models.CustomField)
	if len(reviewIDs) == 0 {
		return result, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, review_id, name, value
		FROM custom_fields
		WHERE review_id = ANY($1)
		ORDER BY review_id, position
	`, reviewIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom fields: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f models.CustomField
		if err := rows.Scan(&f.ID, &f.ReviewID, &f.Name, &f.Value); err != nil {
			return nil, fmt.Errorf("failed to scan custom field: %w", err)
		}
		result[f.ReviewID] = append(result[f.ReviewID], f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating custom fields: %w", err)
	}
	return result, nil
}

// scanReview reads one joined review+movie row in reviewSelect order.
func scanReview(row pgx.Row) (models.Review, error) {
	var r models.Review
	err := row.Scan(
		&r.ID,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.ReviewText,
		&r.Rating,
		&r.WatchDate,
		&r.WatchLocation,
		&r.Friends,
		&r.Movie.ID,
		&r.Movie.CreatedAt,
		&r.Movie.Title,
		&r.Movie.Directors,
		&r.Movie.Actors,
		&r.Movie.ReleaseYear,
		&r.Movie.PosterURL,
		&r.Movie.StillURL,
		&r.Movie.Genres,
		&r.Movie.Keywords,
		&r.Movie.PlotText,
	)
	return r, err
}
