// Package site serves the server-rendered superhero list and add form.
package site

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/okian/heroes/internal/adapters/http/api"
	service "github.com/okian/heroes/internal/app"
	"github.com/okian/heroes/internal/view"
	"github.com/okian/heroes/pkg/logger"
)

// Error constants.
var (
	ErrRender = errors.New("page render failed")
)

// Views is the view runtime used by the pages.
type Views interface {
	Mount(ctx context.Context) (string, view.State, error)
	View(ctx context.Context, id string) (view.State, error)
	Dispatch(ctx context.Context, id string, events ...view.Event) (view.State, error)
}

// Handler renders views as HTML and turns form posts into view events.
type Handler struct {
	views Views
	log   logger.Logger
}

// NewHandler creates a page handler.
func NewHandler(views Views, log logger.Logger) *Handler {
	return &Handler{views: views, log: log}
}

// Register attaches the page routes to mux.
func Register(_ context.Context, mux *http.ServeMux, h *Handler) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /{$}", api.MetricsMiddleware(h.HandleMount, "mount"))
	mux.HandleFunc("GET /views/{id}", api.MetricsMiddleware(h.HandleShow, "view"))
	mux.HandleFunc("POST /views/{id}/open", api.MetricsMiddleware(h.HandleOpen, "open"))
	mux.HandleFunc("POST /views/{id}/cancel", api.MetricsMiddleware(h.HandleCancel, "cancel"))
	mux.HandleFunc("POST /views/{id}/submit", api.MetricsMiddleware(h.HandleSubmit, "submit"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
}

type page struct {
	ID    string
	State view.State
}

// HandleMount handles GET /: every page load mounts a fresh view.
func (h *Handler) HandleMount(w http.ResponseWriter, r *http.Request) {
	id, st, err := h.views.Mount(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, page{ID: id, State: st})
}

// HandleShow handles GET /views/{id}: renders a mounted view without reloading it.
func (h *Handler) HandleShow(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	st, err := h.views.View(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, page{ID: id, State: st})
}

// HandleOpen handles POST /views/{id}/open.
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, view.OpenComposer{})
}

// HandleCancel handles POST /views/{id}/cancel. Typed values are kept in the draft.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, view.CancelComposer{})
}

// HandleSubmit handles POST /views/{id}/submit.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, view.Submit{})
}

// dispatch applies the posted inputs as field edits, then ev, and redirects
// back to the view so a reload does not resubmit the form.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, ev view.Event) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")

	events := append(fieldEdits(r), ev)
	if _, err := h.views.Dispatch(r.Context(), id, events...); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/views/"+id, http.StatusSeeOther)
}

// fieldEdits turns the posted draft inputs into EditField events.
func fieldEdits(r *http.Request) []view.Event {
	var events []view.Event
	for _, f := range []view.Field{view.FieldName, view.FieldSuperpower, view.FieldHumilityScore} {
		if vals, ok := r.PostForm[string(f)]; ok && len(vals) > 0 {
			events = append(events, view.EditField{Field: f, Value: vals[0]})
		}
	}
	return events
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, p page) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		h.log.Error(r.Context(), "render page", logger.String("view", p.ID), logger.Error(errors.Join(ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrViewNotFound) {
		// Evicted or unknown view: start over with a fresh mount.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.log.Error(r.Context(), "view request failed", logger.String("path", r.URL.Path), logger.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
