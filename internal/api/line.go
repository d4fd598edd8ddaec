package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"

	"github.com/ahakim/orderpad/internal/catalog"
	"github.com/ahakim/orderpad/internal/order"
)

// addLine builds a new line from a catalog product and appends it. Adding
// the same product twice yields two independent lines.
func (h *Handler) addLine(w http.ResponseWriter, r *http.Request) {
	s := h.lookupSession(w, r)
	if s == nil {
		return
	}

	var (
		productID string
		quantity  int
	)
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "product_id":
			productID, err = d.Str()
		case "quantity":
			quantity, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if productID == "" {
		writeError(w, http.StatusUnprocessableEntity, "product must be selected")
		return
	}

	line, err := s.AddLine(productID, quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	e := &jx.Encoder{}
	encodeLine(e, line)
	writeJSON(w, http.StatusCreated, e)
}

// setQuantity applies an absolute quantity change to a line.
func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var quantity int
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "quantity":
			quantity, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.applyQuantityChange(w, r, func(list *order.List, lineID string, snap catalog.Snapshot) (order.Change, error) {
		return list.SetQuantity(lineID, quantity, snap)
	})
}

// increment is the +1 stepper affordance.
func (h *Handler) increment(w http.ResponseWriter, r *http.Request) {
	h.applyQuantityChange(w, r, func(list *order.List, lineID string, snap catalog.Snapshot) (order.Change, error) {
		return list.Increment(lineID, snap)
	})
}

// decrement is the -1 stepper affordance. Decrementing from 1 requests
// removal instead of dropping the line.
func (h *Handler) decrement(w http.ResponseWriter, r *http.Request) {
	h.applyQuantityChange(w, r, func(list *order.List, lineID string, snap catalog.Snapshot) (order.Change, error) {
		return list.Decrement(lineID, snap)
	})
}

// applyQuantityChange runs a quantity operation against the session list and
// writes the outcome: the updated line, a removal-requested tag, or the
// mapped domain error.
func (h *Handler) applyQuantityChange(
	w http.ResponseWriter, r *http.Request,
	op func(list *order.List, lineID string, snap catalog.Snapshot) (order.Change, error),
) {
	s := h.lookupSession(w, r)
	if s == nil {
		return
	}
	lineID := chi.URLParam(r, "lineID")

	var (
		change order.Change
		line   *order.Line
	)
	err := s.Do(func(snap catalog.Snapshot, list *order.List) error {
		if list.Line(lineID) == nil {
			return nil
		}
		var err error
		change, err = op(list, lineID, snap)
		line = list.Line(lineID)
		return err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if line == nil {
		writeError(w, http.StatusNotFound, "line not found")
		return
	}

	e := &jx.Encoder{}
	switch change {
	case order.ChangeRemovalRequested:
		e.Obj(func(e *jx.Encoder) {
			e.Field("removal_requested", func(e *jx.Encoder) { e.Bool(true) })
			e.Field("line_id", func(e *jx.Encoder) { e.Str(lineID) })
		})
	default:
		encodeLine(e, line)
	}
	writeJSON(w, http.StatusOK, e)
}

// removeLine deletes a line outright. The UI only calls this from the
// delete-confirmation dialog.
func (h *Handler) removeLine(w http.ResponseWriter, r *http.Request) {
	s := h.lookupSession(w, r)
	if s == nil {
		return
	}
	lineID := chi.URLParam(r, "lineID")

	removed := false
	_ = s.Do(func(_ catalog.Snapshot, list *order.List) error {
		removed = list.Remove(lineID)
		return nil
	})
	if !removed {
		writeError(w, http.StatusNotFound, "line not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// confirmRemoval completes a pending removal.
func (h *Handler) confirmRemoval(w http.ResponseWriter, r *http.Request) {
	s := h.lookupSession(w, r)
	if s == nil {
		return
	}

	removed := false
	_ = s.Do(func(_ catalog.Snapshot, list *order.List) error {
		removed = list.ConfirmRemoval()
		return nil
	})
	if !removed {
		writeError(w, http.StatusConflict, "no removal pending")
		return
	}
	writeJSON(w, http.StatusOK, encodeSessionView(s))
}

// cancelRemoval discards a pending removal, leaving the line untouched.
func (h *Handler) cancelRemoval(w http.ResponseWriter, r *http.Request) {
	s := h.lookupSession(w, r)
	if s == nil {
		return
	}
	_ = s.Do(func(_ catalog.Snapshot, list *order.List) error {
		list.CancelRemoval()
		return nil
	})
	writeJSON(w, http.StatusOK, encodeSessionView(s))
}
