package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/minchan-k/cinelog/internal/models"
	"github.com/minchan-k/cinelog/internal/services"
)

// SettingsHandler handles application-settings requests.
type SettingsHandler struct {
	settingsService *services.SettingsService
	logger          *log.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settingsService *services.SettingsService, logger *log.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// Get handles GET /api/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		h.logger.Printf("Failed to load settings: %v", err)
		respondError(w, err, "Failed to fetch settings")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// Update handles PUT /api/settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input models.Settings
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	settings, err := h.settingsService.Update(r.Context(), input)
	if err != nil {
		h.logger.Printf("Failed to update settings: %v", err)
		respondError(w, err, "Failed to update settings")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}
