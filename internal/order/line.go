// Package order implements the in-memory order list: line construction with
// stock-bound validation, quantity edits, the two-phase removal protocol, and
// derived totals. All operations are synchronous transformations over the
// current list; the owning session serializes access.
package order

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahakim/orderpad/internal/catalog"
)

// MaxQuantity is the form-level ceiling on a single line's quantity.
const MaxQuantity = 999

// InsufficientStockError indicates a requested quantity exceeds the stock
// available for the product. Available names the stock so the caller can
// surface it in the advisory message.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// QuantityRangeError indicates a quantity outside the allowed [1, 999] range
// at line creation.
type QuantityRangeError struct {
	Requested int
}

func (e *QuantityRangeError) Error() string {
	return fmt.Sprintf("quantity %d outside allowed range [1, %d]", e.Requested, MaxQuantity)
}

// Line is one row of the order. Name, description, image and unit price are
// value copies taken from the product at add time; later catalog changes
// never retroactively affect an existing line.
type Line struct {
	ID          string
	ProductID   string
	ProductName string
	Description string
	ImageURL    string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// NewLine constructs a line for the given product and quantity. The quantity
// must lie in [1, MaxQuantity] and must not exceed the product's stock; the
// factory rejects rather than truncates, so the caller can surface the
// available stock to the user. Construction is pure: appending the line to a
// list is the caller's responsibility.
func NewLine(p catalog.Product, quantity int) (*Line, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return nil, &QuantityRangeError{Requested: quantity}
	}
	if quantity > p.Stock {
		return nil, &InsufficientStockError{
			ProductID: p.ID,
			Requested: quantity,
			Available: p.Stock,
		}
	}

	return &Line{
		ID:          uuid.New().String(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Quantity:    quantity,
		UnitPrice:   p.Price,
		LineTotal:   p.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// Subtotal returns quantity x unit price for this line.
func (l *Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
