package order

import (
	"github.com/shopspring/decimal"

	"github.com/ahakim/orderpad/internal/catalog"
)

// Change describes the effect of a quantity operation on the list.
type Change int

const (
	// ChangeNone means the target line was not found; nothing happened.
	ChangeNone Change = iota
	// ChangeUpdated means the line's quantity and total were updated in place.
	ChangeUpdated
	// ChangeRemovalRequested means the requested quantity would drop the line
	// to zero or below. The line is untouched and tagged pending removal;
	// it only disappears after ConfirmRemoval.
	ChangeRemovalRequested
)

// List owns the ordered sequence of lines and all list-level mutation policy.
// Insertion order is preserved for display. Adding the same product twice
// yields two independent lines; lines are never merged.
//
// Removal is a two-step protocol: a quantity drop to zero or below tags the
// line pending removal, and only an explicit ConfirmRemoval drops it. The tag
// lives here rather than in the UI so the "no line disappears without
// confirmation" invariant is enforced and testable in the domain layer.
type List struct {
	lines   []*Line
	pending string // line ID tagged for removal, "" when none
}

// NewList returns an empty order list. An empty list is a valid display
// state, not an error; its total is zero.
func NewList() *List {
	return &List{}
}

// Append adds a line to the end of the list.
func (s *List) Append(line *Line) {
	s.lines = append(s.lines, line)
}

// SetQuantity applies a quantity change to the line with the given ID.
//
// The matching product is resolved against snap by product ID with a name
// fallback; when no product matches, the stock ceiling is not enforced.
// A requested quantity of zero or below does not mutate the line: it tags it
// pending removal and returns ChangeRemovalRequested. A quantity above the
// resolved product's stock rejects the whole operation with
// *InsufficientStockError, leaving the line unchanged. Otherwise the quantity
// is applied and the line total recomputed.
func (s *List) SetQuantity(lineID string, quantity int, snap catalog.Snapshot) (Change, error) {
	line := s.find(lineID)
	if line == nil {
		return ChangeNone, nil
	}

	if quantity <= 0 {
		s.pending = line.ID
		return ChangeRemovalRequested, nil
	}

	if p, ok := snap.Resolve(line.ProductID, line.ProductName); ok && quantity > p.Stock {
		return ChangeNone, &InsufficientStockError{
			ProductID: line.ProductID,
			Requested: quantity,
			Available: p.Stock,
		}
	}

	line.Quantity = quantity
	line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return ChangeUpdated, nil
}

// Increment raises the line's quantity by one, subject to the same stock
// validation as SetQuantity.
func (s *List) Increment(lineID string, snap catalog.Snapshot) (Change, error) {
	line := s.find(lineID)
	if line == nil {
		return ChangeNone, nil
	}
	return s.SetQuantity(lineID, line.Quantity+1, snap)
}

// Decrement lowers the line's quantity by one. Decrementing from 1 enters
// the removal-request path instead of dropping the line outright.
func (s *List) Decrement(lineID string, snap catalog.Snapshot) (Change, error) {
	line := s.find(lineID)
	if line == nil {
		return ChangeNone, nil
	}
	return s.SetQuantity(lineID, line.Quantity-1, snap)
}

// PendingRemoval returns the ID of the line tagged for removal, or "" when
// no removal is pending.
func (s *List) PendingRemoval() string {
	return s.pending
}

// ConfirmRemoval drops the pending line and clears the tag. It reports
// whether a line was actually removed.
func (s *List) ConfirmRemoval() bool {
	if s.pending == "" {
		return false
	}
	id := s.pending
	s.pending = ""
	return s.Remove(id)
}

// CancelRemoval clears the pending tag without touching the line; the
// quantity change that triggered the request is discarded.
func (s *List) CancelRemoval() {
	s.pending = ""
}

// Remove unconditionally deletes the line with the given ID, reporting
// whether it was present. Callers outside the confirmation flow own the
// responsibility of having confirmed with the user first.
func (s *List) Remove(lineID string) bool {
	for i, l := range s.lines {
		if l.ID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			if s.pending == lineID {
				s.pending = ""
			}
			return true
		}
	}
	return false
}

// Line returns the line with the given ID, or nil.
func (s *List) Line(lineID string) *Line {
	return s.find(lineID)
}

// Lines returns the lines in insertion order. The slice is a copy; the
// pointed-to lines are the live ones.
func (s *List) Lines() []*Line {
	out := make([]*Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len reports the number of lines in the list.
func (s *List) Len() int { return len(s.lines) }

// Total sums the subtotals of every line. An empty list totals to zero.
func (s *List) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (s *List) find(lineID string) *Line {
	for _, l := range s.lines {
		if l.ID == lineID {
			return l
		}
	}
	return nil
}
