package api

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/ahakim/orderpad/internal/catalog"
	"github.com/ahakim/orderpad/internal/order"
)

// createSession opens a session, fetching the catalog before responding so
// product selection is enabled (or known-empty) from the first render.
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create(r.Context())
	writeJSON(w, http.StatusCreated, encodeSessionView(s))
}

// getSession returns the current order list view.
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	s := h.lookupSession(w, r)
	if s == nil {
		return
	}
	writeJSON(w, http.StatusOK, encodeSessionView(s))
}

// closeSession discards the session and everything it holds.
func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	s := h.lookupSession(w, r)
	if s == nil {
		return
	}
	h.sessions.Close(s.ID)
	w.WriteHeader(http.StatusNoContent)
}

// getCatalog returns the session's catalog snapshot for the selection
// control. An empty catalog is a valid response, not an error.
func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	s := h.lookupSession(w, r)
	if s == nil {
		return
	}

	e := &jx.Encoder{}
	_ = s.Do(func(snap catalog.Snapshot, _ *order.List) error {
		e.Obj(func(e *jx.Encoder) {
			e.Field("products", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, p := range snap.Products() {
						encodeProduct(e, p)
					}
				})
			})
		})
		return nil
	})
	writeJSON(w, http.StatusOK, e)
}
