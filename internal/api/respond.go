package api

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/ahakim/orderpad/internal/catalog"
	"github.com/ahakim/orderpad/internal/money"
	"github.com/ahakim/orderpad/internal/order"
	"github.com/ahakim/orderpad/internal/session"
)

// maxRequestBody caps request bodies at 64 KiB; every request here is a
// small JSON object.
const maxRequestBody = 64 << 10

func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes the standard {code, message} error payload.
func writeError(w http.ResponseWriter, status int, msg string) {
	e := &jx.Encoder{}
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(status) })
		e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
	})
	writeJSON(w, status, e)
}

// writeDomainError maps domain errors onto advisory responses. Rejected
// operations never mutate list state, so every error here leaves the prior
// state intact.
func writeDomainError(w http.ResponseWriter, err error) {
	var stockErr *order.InsufficientStockError
	if errors.As(err, &stockErr) {
		e := &jx.Encoder{}
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Int(http.StatusConflict) })
			e.Field("message", func(e *jx.Encoder) { e.Str(stockErr.Error()) })
			e.Field("available_stock", func(e *jx.Encoder) { e.Int(stockErr.Available) })
		})
		writeJSON(w, http.StatusConflict, e)
		return
	}

	var rangeErr *order.QuantityRangeError
	if errors.As(err, &rangeErr) {
		writeError(w, http.StatusUnprocessableEntity, rangeErr.Error())
		return
	}

	if errors.Is(err, session.ErrProductNotFound) {
		writeError(w, http.StatusUnprocessableEntity, "product not found in catalog")
		return
	}

	writeError(w, http.StatusInternalServerError, "internal error")
}

// encodeAmount writes an amount twice: the exact decimal string for clients
// doing arithmetic, and the localized rupiah string for display.
func encodeAmount(e *jx.Encoder, name string, v decimal.Decimal) {
	e.Field(name, func(e *jx.Encoder) { e.Str(v.String()) })
	e.Field(name+"_display", func(e *jx.Encoder) { e.Str(money.FormatIDR(v)) })
}

func encodeLine(e *jx.Encoder, l *order.Line) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(l.ID) })
		e.Field("product_id", func(e *jx.Encoder) { e.Str(l.ProductID) })
		e.Field("product_name", func(e *jx.Encoder) { e.Str(l.ProductName) })
		e.Field("description", func(e *jx.Encoder) { e.Str(l.Description) })
		e.Field("url_image", func(e *jx.Encoder) { e.Str(l.ImageURL) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(l.Quantity) })
		encodeAmount(e, "unit_price", l.UnitPrice)
		encodeAmount(e, "line_total", l.LineTotal)
	})
}

func encodeProduct(e *jx.Encoder, p catalog.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("description", func(e *jx.Encoder) { e.Str(p.Description) })
		encodeAmount(e, "price", p.Price)
		e.Field("url_image", func(e *jx.Encoder) { e.Str(p.ImageURL) })
		e.Field("stock", func(e *jx.Encoder) { e.Int(p.Stock) })
	})
}

// encodeSessionView snapshots the session under its lock and writes the
// order list view: lines, grand total, catalog readiness, and any pending
// removal tag.
func encodeSessionView(s *session.Session) *jx.Encoder {
	e := &jx.Encoder{}
	_ = s.Do(func(snap catalog.Snapshot, list *order.List) error {
		e.Obj(func(e *jx.Encoder) {
			e.Field("id", func(e *jx.Encoder) { e.Str(s.ID) })
			e.Field("catalog_size", func(e *jx.Encoder) { e.Int(snap.Len()) })
			e.Field("catalog_ready", func(e *jx.Encoder) { e.Bool(!snap.Empty()) })
			e.Field("lines", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, l := range list.Lines() {
						encodeLine(e, l)
					}
				})
			})
			encodeAmount(e, "total", list.Total())
			if pending := list.PendingRemoval(); pending != "" {
				e.Field("pending_removal", func(e *jx.Encoder) { e.Str(pending) })
			}
		})
		return nil
	})
	return e
}

// decodeBody decodes a small JSON object request body field by field.
func decodeBody(r *http.Request, fn func(d *jx.Decoder, key string) error) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return errors.Wrap(err, "read body")
	}
	return jx.DecodeBytes(body).Obj(fn)
}
