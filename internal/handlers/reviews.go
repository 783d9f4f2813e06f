package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/minchan-k/cinelog/internal/models"
	"github.com/minchan-k/cinelog/internal/services"
)

// ReviewHandler handles review requests.
type ReviewHandler struct {
	reviewService *services.ReviewService
	logger        *log.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService *services.ReviewService, logger *log.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// List handles GET /api/reviews?sort=&year=&month=
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sort, err := models.ParseReviewSort(query.Get("sort"))
	if err != nil {
		respondError(w, err, "Invalid sort option")
		return
	}

	input := models.ListReviewsInput{Sort: sort}
	if yearStr := query.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			badRequest(w, "Invalid year %q", yearStr)
			return
		}
		month, err := strconv.Atoi(query.Get("month"))
		if err != nil || month < 1 || month > 12 {
			badRequest(w, "Invalid month %q", query.Get("month"))
			return
		}
		input.Year = year
		input.Month = time.Month(month)
	}

	reviews, err := h.reviewService.List(r.Context(), input)
	if err != nil {
		h.logger.Printf("Failed to list reviews: %v", err)
		respondError(w, err, "Failed to fetch reviews")
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	respondJSON(w, http.StatusOK, reviews)
}

// Create handles POST /api/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.CreateReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	review, err := h.reviewService.Create(r.Context(), input)
	if err != nil {
		h.logger.Printf("Failed to create review: %v", err)
		respondError(w, err, "Failed to create review")
		return
	}

	respondJSON(w, http.StatusCreated, review)
}

// Get handles GET /api/reviews/{id}
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "Invalid review ID")
		return
	}

	review, err := h.reviewService.Get(r.Context(), id)
	if err != nil {
		h.logger.Printf("Failed to get review: %v", err)
		respondError(w, err, "Failed to fetch review")
		return
	}

	respondJSON(w, http.StatusOK, review)
}

// Update handles PATCH /api/reviews/{id}
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "Invalid review ID")
		return
	}

	var input models.UpdateReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	review, err := h.reviewService.Update(r.Context(), id, input)
	if err != nil {
		h.logger.Printf("Failed to update review: %v", err)
		respondError(w, err, "Failed to update review")
		return
	}

	respondJSON(w, http.StatusOK, review)
}

// Delete handles DELETE /api/reviews/{id}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "Invalid review ID")
		return
	}

	if err := h.reviewService.Delete(r.Context(), id); err != nil {
		h.logger.Printf("Failed to delete review: %v", err)
		respondError(w, err, "Failed to delete review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReplaceFields handles PUT /api/reviews/{id}/fields
func (h *ReviewHandler) ReplaceFields(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "Invalid review ID")
		return
	}

	var fields []models.CustomField
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	saved, err := h.reviewService.ReplaceFields(r.Context(), id, fields)
	if err != nil {
		h.logger.Printf("Failed to replace custom fields: %v", err)
		respondError(w, err, "Failed to save custom fields")
		return
	}
	if saved == nil {
		saved = []models.CustomField{}
	}

	respondJSON(w, http.StatusOK, saved)
}
