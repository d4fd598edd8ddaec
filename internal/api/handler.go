// Package api exposes the order scratchpad over HTTP. Handlers translate
// wire requests into domain operations and map domain errors onto advisory
// JSON payloads; all list-level policy lives in the order package.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahakim/orderpad/internal/session"
)

// Handler wires the session manager into the HTTP routes.
type Handler struct {
	sessions *session.Manager
}

// NewHandler constructs a Handler around the given session manager.
func NewHandler(sessions *session.Manager) *Handler {
	return &Handler{sessions: sessions}
}

// Routes returns the API router mounted under /api/v1.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Delete("/", h.closeSession)
			r.Get("/catalog", h.getCatalog)

			r.Post("/lines", h.addLine)
			r.Put("/lines/{lineID}/quantity", h.setQuantity)
			r.Post("/lines/{lineID}/increment", h.increment)
			r.Post("/lines/{lineID}/decrement", h.decrement)
			r.Delete("/lines/{lineID}", h.removeLine)

			r.Post("/removal/confirm", h.confirmRemoval)
			r.Post("/removal/cancel", h.cancelRemoval)
		})
	})

	return r
}

// lookupSession resolves the sessionID path parameter, writing a 404 and
// returning nil when the session does not exist.
func (h *Handler) lookupSession(w http.ResponseWriter, r *http.Request) *session.Session {
	id := chi.URLParam(r, "sessionID")
	s, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return nil
	}
	return s
}
