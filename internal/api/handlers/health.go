package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/amaumene/moviemate/internal/controllers"
	"github.com/rs/zerolog"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	items  *controllers.ItemController
	logger zerolog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(items *controllers.ItemController, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{items: items, logger: logger}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	DB        struct {
		Status  string `json:"status"`
		Message string `json:"message,omitempty"`
	} `json:"db"`
}

// ServeHTTP handles the health check endpoint
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	}

	if err := h.items.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("Storage ping failed")
		response.Status = "degraded"
		response.DB.Status = "error"
		response.DB.Message = "storage ping failed"
		writeJSON(w, h.logger, http.StatusServiceUnavailable, response)
		return
	}

	response.DB.Status = "ok"
	writeJSON(w, h.logger, http.StatusOK, response)
}

// Home handles the root endpoint
func Home(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, map[string]string{
			"message": "Hello from MovieMate backend!",
		})
	}
}
