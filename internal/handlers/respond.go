package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/minchan-k/cinelog/internal/models"
	"github.com/minchan-k/cinelog/internal/wishfile"
)

// respondJSON writes v as a JSON response.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps an error to an inline JSON failure. Validation and
// import failures carry their message to the user; everything else hides
// behind the fallback text.
func respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, wishfile.ErrImport):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, pgx.ErrNoRows):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	default:
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": fallback})
	}
}

func badRequest(w http.ResponseWriter, format string, args ...any) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf(format, args...)})
}
