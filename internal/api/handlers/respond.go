package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/amaumene/moviemate/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger zerolog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, logger zerolog.Logger, status int, message string) {
	writeJSON(w, logger, status, errorResponse{Error: message})
}

// writeFailure maps an operation error to its status code
func writeFailure(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, logger, http.StatusBadRequest, ve.Message)
	case errors.Is(err, models.ErrNotFound):
		writeError(w, logger, http.StatusNotFound, "item not found")
	default:
		logger.Error().Err(err).Msg("Request failed")
		writeError(w, logger, http.StatusInternalServerError, "internal server error")
	}
}

// readBody reads the request body, bounded by maxBodyBytes
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, models.Invalid("", "failed to read request body")
	}
	return body, nil
}

// itemID parses the {id} route parameter. An id that is not a positive
// integer cannot name an item, so it reports ErrNotFound.
func itemID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, models.ErrNotFound
	}
	return id, nil
}
