package handlers

import (
	"log"
	"net/http"

	"github.com/minchan-k/cinelog/internal/kmdb"
	"github.com/minchan-k/cinelog/internal/services"
)

// SearchHandler handles metadata search requests.
type SearchHandler struct {
	searchService *services.SearchService
	logger        *log.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searchService *services.SearchService, logger *log.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search handles GET /api/search?field=&query=. Failed upstream requests
// come back as an empty result list, not an error status — the client
// shows "no results" either way.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		badRequest(w, "Query parameter is required")
		return
	}

	filter, err := kmdb.ParseFilter(r.URL.Query().Get("field"))
	if err != nil {
		badRequest(w, "Invalid search field")
		return
	}

	records := h.searchService.Search(r.Context(), filter, query)

	respondJSON(w, http.StatusOK, map[string]any{
		"field":   filter.Param(),
		"label":   filter.Label(),
		"query":   query,
		"results": records,
	})
}

// Latest handles GET /api/search/latest — the most recently committed
// result set under the last-writer-wins rule.
func (h *SearchHandler) Latest(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"results": h.searchService.Latest(),
	})
}
