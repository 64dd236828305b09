package handlers

import (
	"net/http"

	"github.com/amaumene/moviemate/internal/controllers"
	"github.com/amaumene/moviemate/internal/models"
	"github.com/rs/zerolog"
)

// ItemHandler serves the item routes
type ItemHandler struct {
	items  *controllers.ItemController
	logger zerolog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(items *controllers.ItemController, logger zerolog.Logger) *ItemHandler {
	return &ItemHandler{
		items:  items,
		logger: logger,
	}
}

// Create handles POST /items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	fields, err := models.ParseItemFields(body)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	item, err := h.items.Create(r.Context(), fields)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, item)
}

// List handles GET /items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.items.List(r.Context(), models.ItemQuery{
		Genre:    q.Get("genre"),
		Platform: q.Get("platform"),
		Status:   q.Get("status"),
		Kind:     q.Get("kind"),
		Sort:     models.ParseSortOrder(q.Get("sort")),
	})
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, items)
}

// Get handles GET /items/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, item)
}

// Update handles PUT /items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		h.rejectBody(w, r, id, err)
		return
	}

	fields, err := models.ParseItemFields(body)
	if err != nil {
		h.rejectBody(w, r, id, err)
		return
	}

	item, err := h.items.Update(r.Context(), id, fields)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, item)
}

// Delete handles DELETE /items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	if err := h.items.Delete(r.Context(), id); err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]bool{"deleted": true})
}

// Progress handles POST /items/{id}/progress
func (h *ItemHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		h.rejectBody(w, r, id, err)
		return
	}

	delta, err := models.ParseProgressDelta(body)
	if err != nil {
		h.rejectBody(w, r, id, err)
		return
	}

	item, err := h.items.AdvanceProgress(r.Context(), id, delta)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, item)
}

// Review handles POST /items/{id}/review
func (h *ItemHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		h.rejectBody(w, r, id, err)
		return
	}

	review, err := models.ParseReviewFields(body)
	if err != nil {
		h.rejectBody(w, r, id, err)
		return
	}

	item, err := h.items.RecordReview(r.Context(), id, review)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, item)
}

// Recommend handles GET /recommendations
func (h *ItemHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.Recommend(r.Context(), r.URL.Query().Get("genre"))
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, items)
}

// rejectBody reports a malformed body on an item route. A missing item takes
// precedence, so the body error is only returned once the id resolves.
func (h *ItemHandler) rejectBody(w http.ResponseWriter, r *http.Request, id uint64, err error) {
	if _, getErr := h.items.Get(r.Context(), id); getErr != nil {
		writeFailure(w, h.logger, getErr)
		return
	}
	writeFailure(w, h.logger, err)
}
