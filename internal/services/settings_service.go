package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minchan-k/cinelog/internal/models"
)

// SettingsService reads and writes the single application-settings row.
// Theme is persisted state handed to clients explicitly, never an ambient
// global.
type SettingsService struct {
	db *pgxpool.Pool
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *pgxpool.Pool) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the current settings.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.QueryRow(ctx, "SELECT theme FROM settings WHERE id = 1").Scan(&settings.Theme)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &settings, nil
}

// Update validates and stores new settings.
func (s *SettingsService) Update(ctx context.Context, settings models.Settings) (*models.Settings, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	_, err := s.db.Exec(ctx, "UPDATE settings SET theme = $1 WHERE id = 1", settings.Theme)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return &settings, nil
}
