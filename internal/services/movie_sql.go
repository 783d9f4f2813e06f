package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/minchan-k/cinelog/internal/models"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the movie
// helpers work inside and outside transactions.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// insertMovie persists a stored movie row. Each row belongs to exactly
// one review or wishlist entry; callers insert a fresh copy per parent.
func insertMovie(ctx context.Context, q querier, m models.StoredMovie) error {
	_, err := q.Exec(ctx, `
		INSERT INTO movies (id, created_at, title, directors, actors, release_year,
		                    poster_url, still_url, genres, keywords, plot_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		m.ID,
		m.CreatedAt,
		m.Title,
		m.Directors,
		m.Actors,
		m.ReleaseYear,
		m.PosterURL,
		m.StillURL,
		m.Genres,
		m.Keywords,
		m.PlotText,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}
	return nil
}

// scanMovie reads one movie row selected in table-column order.
func scanMovie(row pgx.Row) (models.StoredMovie, error) {
	var m models.StoredMovie
	err := row.Scan(
		&m.ID,
		&m.CreatedAt,
		&m.Title,
		&m.Directors,
		&m.Actors,
		&m.ReleaseYear,
		&m.PosterURL,
		&m.StillURL,
		&m.Genres,
		&m.Keywords,
		&m.PlotText,
	)
	return m, err
}

func deleteMovie(ctx context.Context, q querier, id uuid.UUID) error {
	if _, err := q.Exec(ctx, "DELETE FROM movies WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	return nil
}
