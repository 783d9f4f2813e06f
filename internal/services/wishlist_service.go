package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minchan-k/cinelog/internal/models"
	"github.com/minchan-k/cinelog/internal/wishfile"
)

// WishlistService handles wishlist-folder persistence. Folder entries own
// their movie rows, so adding always inserts a fresh copy and removing
// deletes the row.
type WishlistService struct {
	db *pgxpool.Pool
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(db *pgxpool.Pool) *WishlistService {
	return &WishlistService{db: db}
}

// Create persists a new empty folder.
func (s *WishlistService) Create(ctx context.Context, name string) (*models.Wishlist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: folder name is required", models.ErrValidation)
	}
	folder := models.NewWishlist(name)

	_, err := s.db.Exec(ctx, `
		INSERT INTO wishlists (id, created_at, name)
		VALUES ($1, $2, $3)
	`, folder.ID, folder.CreatedAt, folder.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert wishlist: %w", err)
	}
	return &folder, nil
}

// Get retrieves a folder with its movies in list order.
func (s *WishlistService) Get(ctx context.Context, id uuid.UUID) (*models.Wishlist, error) {
	var folder models.Wishlist
	err := s.db.QueryRow(ctx, `
		SELECT id, created_at, name
		FROM wishlists
		WHERE id = $1
	`, id).Scan(&folder.ID, &folder.CreatedAt, &folder.Name)
	if err != nil {
		return nil, err
	}

	folder.Movies, err = s.moviesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// List returns all folders with their movies, oldest folder first.
func (s *WishlistService) List(ctx context.Context) ([]models.Wishlist, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, created_at, name
		FROM wishlists
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlists: %w", err)
	}
	defer rows.Close()

	var folders []models.Wishlist
	for rows.Next() {
		var folder models.Wishlist
		if err := rows.Scan(&folder.ID, &folder.CreatedAt, &folder.Name); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist: %w", err)
		}
		folders = append(folders, folder)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlists: %w", err)
	}

	for i := range folders {
		folders[i].Movies, err = s.moviesFor(ctx, folders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return folders, nil
}

// Rename changes a folder's name in place.
func (s *WishlistService) Rename(ctx context.Context, id uuid.UUID, name string) error {
	if name == "" {
		return fmt.Errorf("%w: folder name is required", models.ErrValidation)
	}
	result, err := s.db.Exec(ctx, "UPDATE wishlists SET name = $1 WHERE id = $2", name, id)
	if err != nil {
		return fmt.Errorf("failed to rename wishlist: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a folder and every movie it owns.
func (s *WishlistService) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	movieIDs, err := movieIDsFor(ctx, tx, id)
	if err != nil {
		return err
	}

	result, err := tx.Exec(ctx, "DELETE FROM wishlists WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	for _, movieID := range movieIDs {
		if err := deleteMovie(ctx, tx, movieID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AddMovie appends a fresh stored copy of the record to the folder.
// Duplicates are allowed: the same movie added twice yields two entries.
func (s *WishlistService) AddMovie(ctx context.Context, folderID uuid.UUID, rec models.MovieRecord) (*models.StoredMovie, error) {
	movie := models.NewStoredMovie(rec)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM wishlists WHERE id = $1)", folderID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check wishlist: %w", err)
	}
	if !exists {
		return nil, pgx.ErrNoRows
	}

	if err := insertMovie(ctx, tx, movie); err != nil {
		return nil, err
	}
	if err := appendEntry(ctx, tx, folderID, movie.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &movie, nil
}

// RemoveMovie removes exactly one entry by movie id and deletes the owned
// movie row. The list shrinks by one; nothing is re-appended.
func (s *WishlistService) RemoveMovie(ctx context.Context, folderID, movieID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		DELETE FROM wishlist_movies
		WHERE wishlist_id = $1 AND movie_id = $2
	`, folderID, movieID)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := deleteMovie(ctx, tx, movieID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Export serializes a folder to the portable document format.
func (s *WishlistService) Export(ctx context.Context, id uuid.UUID) ([]byte, error) {
	folder, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return wishfile.Export(*folder)
}

// Import replaces a folder's name and movies with the decoded document's,
// atomically. The folder keeps its own id; the document's movie ids are
// preserved. A malformed document leaves the folder untouched.
func (s *WishlistService) Import(ctx context.Context, id uuid.UUID, data []byte) (*models.Wishlist, error) {
	decoded, err := wishfile.Import(data)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var folder models.Wishlist
	err = tx.QueryRow(ctx, `
		SELECT id, created_at, name
		FROM wishlists
		WHERE id = $1
	`, id).Scan(&folder.ID, &folder.CreatedAt, &folder.Name)
	if err != nil {
		return nil, err
	}

	oldMovieIDs, err := movieIDsFor(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM wishlist_movies WHERE wishlist_id = $1", id); err != nil {
		return nil, fmt.Errorf("failed to clear wishlist entries: %w", err)
	}
	for _, movieID := range oldMovieIDs {
		if err := deleteMovie(ctx, tx, movieID); err != nil {
			return nil, err
		}
	}

	wishfile.Replace(&folder, decoded)

	if _, err := tx.Exec(ctx, "UPDATE wishlists SET name = $1 WHERE id = $2", folder.Name, id); err != nil {
		return nil, fmt.Errorf("failed to update wishlist name: %w", err)
	}
	for i := range folder.Movies {
		if folder.Movies[i].CreatedAt.IsZero() {
			folder.Movies[i].CreatedAt = time.Now()
		}
		if err := insertMovie(ctx, tx, folder.Movies[i]); err != nil {
			return nil, err
		}
		if err := appendEntry(ctx, tx, id, folder.Movies[i].ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &folder, nil
}

// appendEntry links a movie to a folder at the next free position.
func appendEntry(ctx context.Context, q querier, folderID, movieID uuid.UUID) error {
	_, err := q.Exec(ctx, `
		INSERT INTO wishlist_movies (movie_id, wishlist_id, position)
		VALUES ($1, $2, COALESCE(
			(SELECT MAX(position) + 1 FROM wishlist_movies WHERE wishlist_id = $2), 0))
	`, movieID, folderID)
	if err != nil {
		return fmt.Errorf("failed to insert wishlist entry: %w", err)
	}
	return nil
}

func movieIDsFor(ctx context.Context, q querier, folderID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := q.Query(ctx, `
		SELECT movie_id FROM wishlist_movies
		WHERE wishlist_id = $1
		ORDER BY position
	`, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlist entries: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist entry: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// moviesFor loads a folder's movies in position order.
func (s *WishlistService) moviesFor(ctx context.Context, folderID uuid.UUID) ([]models.StoredMovie, error) {
	rows, err := s.db.Query(ctx, `
		SELECT m.id, m.created_at, m.title, m.directors, m.actors, m.release_year,
		       m.poster_url, m.still_url, m.genres, m.keywords, m.plot_text
		FROM wishlist_movies wm
		JOIN movies m ON m.id = wm.movie_id
		WHERE wm.wishlist_id = $1
		ORDER BY wm.position
	`, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlist movies: %w", err)
	}
	defer rows.Close()

	var movies []models.StoredMovie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
