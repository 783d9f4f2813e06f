package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/minchan-k/cinelog/internal/models"
	"github.com/minchan-k/cinelog/internal/services"
)

// LayoutHandler handles custom-field-layout requests.
type LayoutHandler struct {
	layoutService *services.LayoutService
	logger        *log.Logger
}

// NewLayoutHandler creates a new layout handler.
func NewLayoutHandler(layoutService *services.LayoutService, logger *log.Logger) *LayoutHandler {
	return &LayoutHandler{
		layoutService: layoutService,
		logger:        logger,
	}
}

// List handles GET /api/layouts
func (h *LayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	layouts, err := h.layoutService.List(r.Context())
	if err != nil {
		h.logger.Printf("Failed to list layouts: %v", err)
		respondError(w, err, "Failed to fetch layouts")
		return
	}
	if layouts == nil {
		layouts = []models.FieldLayout{}
	}

	respondJSON(w, http.StatusOK, layouts)
}

// Create handles POST /api/layouts — saves the current working field set
// as a named layout. Values are not captured, only names.
func (h *LayoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name   string               `json:"name"`
		Fields []models.CustomField `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	layout, err := h.layoutService.Save(r.Context(), input.Name, input.Fields)
	if err != nil {
		h.logger.Printf("Failed to save layout: %v", err)
		respondError(w, err, "Failed to save layout")
		return
	}

	respondJSON(w, http.StatusCreated, layout)
}

// Fields handles GET /api/layouts/{id}/fields — materializes the layout
// as fresh custom fields with empty values, ready to replace an editor's
// working set.
func (h *LayoutHandler) Fields(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "Invalid layout ID")
		return
	}

	layout, err := h.layoutService.Get(r.Context(), id)
	if err != nil {
		h.logger.Printf("Failed to get layout: %v", err)
		respondError(w, err, "Failed to fetch layout")
		return
	}

	respondJSON(w, http.StatusOK, layout.Apply())
}

// Delete handles DELETE /api/layouts/{id}. Reviews that applied the
// layout in the past keep their fields.
func (h *LayoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "Invalid layout ID")
		return
	}

	if err := h.layoutService.Delete(r.Context(), id); err != nil {
		h.logger.Printf("Failed to delete layout: %v", err)
		respondError(w, err, "Failed to delete layout")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
