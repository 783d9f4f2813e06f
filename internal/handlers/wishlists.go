package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/minchan-k/cinelog/internal/models"
	"github.com/minchan-k/cinelog/internal/services"
)

// Wishlist documents are small; cap import bodies well above any real one.
const maxImportSize = 4 << 20

// WishlistHandler handles wishlist-folder requests.
type WishlistHandler struct {
	wishlistService *services.WishlistService
	logger          *log.Logger
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(wishlistService *services.WishlistService, logger *log.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// wishlistView decorates a folder with its representative poster.
type wishlistView struct {
	models.Wishlist
	RepresentativePoster *string `json:"representativePoster"`
}

func viewOf(folder models.Wishlist) wishlistView {
	if folder.Movies == nil {
		folder.Movies = []models.StoredMovie{}
	}
	return wishlistView{
		Wishlist:             folder,
		RepresentativePoster: folder.RepresentativePoster(),
	}
}

// List handles GET /api/wishlists
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	folders, err := h.wishlistService.List(r.Context())
	if err != nil {
		h.logger.Printf("Failed to list wishlists: %v", err)
		respondError(w, err, "Failed to fetch wishlists")
		return
	}

	views := make([]wishlistView, len(folders))
	for i, folder := range folders {
		views[i] = viewOf(folder)
	}

	respondJSON(w, http.StatusOK, views)
}

// Create handles POST /api/wishlists
func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	folder, err := h.wishlistService.Create(r.Context(), input.Name)
	if err != nil {
		h.logger.Printf("Failed to create wishlist: %v", err)
		respondError(w, err, "Failed to create wishlist")
		return
	}

	respondJSON(w, http.StatusCreated, viewOf(*folder))
}

// Get handles GET /api/wishlists/{id}
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "Invalid wishlist ID")
		return
	}

	folder, err := h.wishlistService.Get(r.Context(), id)
	if err != nil {
		h.logger.Printf("Failed to get wishlist: %v", err)
		respondError(w, err, "Failed to fetch wishlist")
		return
	}

	respondJSON(w, http.StatusOK, viewOf(*folder))
}

// Rename handles PATCH /api/wishlists/{id}
func (h *WishlistHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "Invalid wishlist ID")
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	if err := h.wishlistService.Rename(r.Context(), id, input.Name); err != nil {
		h.logger.Printf("Failed to rename wishlist: %v", err)
		respondError(w, err, "Failed to rename wishlist")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/wishlists/{id}
func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "Invalid wishlist ID")
		return
	}

	if err := h.wishlistService.Delete(r.Context(), id); err != nil {
		h.logger.Printf("Failed to delete wishlist: %v", err)
		respondError(w, err, "Failed to delete wishlist")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddMovie handles POST /api/wishlists/{id}/movies
func (h *WishlistHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "Invalid wishlist ID")
		return
	}

	var rec models.MovieRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	movie, err := h.wishlistService.AddMovie(r.Context(), id, rec)
	if err != nil {
		h.logger.Printf("Failed to add movie to wishlist: %v", err)
		respondError(w, err, "Failed to add movie")
		return
	}

	respondJSON(w, http.StatusCreated, movie)
}

// RemoveMovie handles DELETE /api/wishlists/{id}/movies/{movieID}
func (h *WishlistHandler) RemoveMovie(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "Invalid wishlist ID")
		return
	}
	movieID, err := uuid.Parse(r.PathValue("movieID"))
	if err != nil {
		badRequest(w, "Invalid movie ID")
		return
	}

	if err := h.wishlistService.RemoveMovie(r.Context(), id, movieID); err != nil {
		h.logger.Printf("Failed to remove movie from wishlist: %v", err)
		respondError(w, err, "Failed to remove movie")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/wishlists/{id}/export — the portable document
// served as a download.
func (h *WishlistHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "Invalid wishlist ID")
		return
	}

	data, err := h.wishlistService.Export(r.Context(), id)
	if err != nil {
		h.logger.Printf("Failed to export wishlist: %v", err)
		respondError(w, err, "Failed to export wishlist")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "wishlist-"+id.String()+".json"))
	w.Write(data)
}

// Import handles POST /api/wishlists/{id}/import — replaces the folder's
// name and movies with the uploaded document's, or changes nothing on a
// malformed document.
func (h *WishlistHandler) Import(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "Invalid wishlist ID")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		badRequest(w, "Failed to read request body")
		return
	}

	folder, err := h.wishlistService.Import(r.Context(), id, data)
	if err != nil {
		h.logger.Printf("Failed to import wishlist: %v", err)
		respondError(w, err, "Failed to import wishlist")
		return
	}

	respondJSON(w, http.StatusOK, viewOf(*folder))
}
