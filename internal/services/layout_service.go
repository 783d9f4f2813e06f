package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minchan-k/cinelog/internal/models"
)

// LayoutService handles custom-field-layout persistence. Layouts live
// independently of reviews: deleting reviews that once applied a layout
// never touches the layout, and deleting a layout never touches reviews.
type LayoutService struct {
	db *pgxpool.Pool
}

// NewLayoutService creates a new LayoutService.
func NewLayoutService(db *pgxpool.Pool) *LayoutService {
	return &LayoutService{db: db}
}

// Save snapshots the names of the given working fields as a new layout.
// An empty field set is rejected with no persisted side effect.
func (s *LayoutService) Save(ctx context.Context, name string, fields []models.CustomField) (*models.FieldLayout, error) {
	layout, err := models.NewFieldLayout(name, fields)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO field_layouts (id, created_at, name, fields)
		VALUES ($1, $2, $3, $4)
	`, layout.ID, layout.CreatedAt, layout.Name, layout.Fields)
	if err != nil {
		return nil, fmt.Errorf("failed to insert layout: %w", err)
	}

	return &layout, nil
}

// Get retrieves one layout.
func (s *LayoutService) Get(ctx context.Context, id uuid.UUID) (*models.FieldLayout, error) {
	var layout models.FieldLayout
	err := s.db.QueryRow(ctx, `
		SELECT id, created_at, name, fields
		FROM field_layouts
		WHERE id = $1
	`, id).Scan(&layout.ID, &layout.CreatedAt, &layout.Name, &layout.Fields)
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

// List returns all layouts in creation order.
func (s *LayoutService) List(ctx context.Context) ([]models.FieldLayout, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, created_at, name, fields
		FROM field_layouts
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query layouts: %w", err)
	}
	defer rows.Close()

	var layouts []models.FieldLayout
	for rows.Next() {
		var layout models.FieldLayout
		if err := rows.Scan(&layout.ID, &layout.CreatedAt, &layout.Name, &layout.Fields); err != nil {
			return nil, fmt.Errorf("failed to scan layout: %w", err)
		}
		layouts = append(layouts, layout)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating layouts: %w", err)
	}
	return layouts, nil
}

// Delete removes a layout.
func (s *LayoutService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Exec(ctx, "DELETE FROM field_layouts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
