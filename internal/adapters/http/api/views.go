package api

import (
	"errors"
	"net/http"

	service "github.com/okian/heroes/internal/app"
)

// ViewsHandler exposes view state as JSON.
type ViewsHandler struct {
	views Views
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(views Views) *ViewsHandler {
	return &ViewsHandler{views: views}
}

// HandleGetView handles GET /api/views/{id}.
func (h *ViewsHandler) HandleGetView(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_view"
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	st, err := h.views.View(r.Context(), id)
	switch {
	case errors.Is(err, service.ErrViewNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, st)
}
