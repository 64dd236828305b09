package handlers

import (
	"net/http"

	"github.com/amaumene/moviemate/internal/controllers"
	"github.com/amaumene/moviemate/internal/models"
	"github.com/rs/zerolog"
)

// StatusHandler handles status requests
type StatusHandler struct {
	items  *controllers.ItemController
	logger zerolog.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(items *controllers.ItemController, logger zerolog.Logger) *StatusHandler {
	return &StatusHandler{
		items:  items,
		logger: logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	TotalItems      int            `json:"total_items"`
	Rated           int            `json:"rated"`
	EpisodesWatched int            `json:"episodes_watched"`
	ItemsByStatus   map[string]int `json:"items_by_status"`
	ItemsByKind     map[string]int `json:"items_by_kind"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context(), models.ItemQuery{})
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	response := StatusResponse{
		TotalItems:    len(items),
		ItemsByStatus: make(map[string]int),
		ItemsByKind:   make(map[string]int),
	}

	for _, item := range items {
		if item.HasRating() {
			response.Rated++
		}
		response.EpisodesWatched += item.EpisodesWatched

		// Count by status
		response.ItemsByStatus[item.Status]++

		// Count by kind
		response.ItemsByKind[item.Kind]++
	}

	writeJSON(w, h.logger, http.StatusOK, response)
}
