package catalog

import "context"

// Source lists products from the remote catalog service.
type Source interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
}

// Snapshot is an immutable view of the catalog taken at session start.
// Order lines denormalize product fields from a Snapshot at add time, so
// later catalog changes never leak into existing lines.
type Snapshot struct {
	products []Product
	byID     map[string]int
	byName   map[string]int
}

// NewSnapshot builds a Snapshot from the given products. The slice is copied;
// the caller keeps ownership of its argument.
func NewSnapshot(products []Product) Snapshot {
	s := Snapshot{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
		byName:   make(map[string]int, len(products)),
	}
	copy(s.products, products)
	for i, p := range s.products {
		s.byID[p.ID] = i
		if _, dup := s.byName[p.Name]; !dup {
			s.byName[p.Name] = i
		}
	}
	return s
}

// EmptySnapshot is the inert catalog used when the remote fetch fails.
// Product selection stays disabled but the session remains usable.
func EmptySnapshot() Snapshot {
	return NewSnapshot(nil)
}

// Resolve finds the product for an order line, matching by ID first and
// falling back to the product name. The name fallback is a defensive alias
// lookup for lines whose product ID no longer matches the catalog.
func (s Snapshot) Resolve(productID, productName string) (Product, bool) {
	if i, ok := s.byID[productID]; ok {
		return s.products[i], true
	}
	if i, ok := s.byName[productName]; ok {
		return s.products[i], true
	}
	return Product{}, false
}

// ByID finds a product by its identifier only.
func (s Snapshot) ByID(productID string) (Product, bool) {
	i, ok := s.byID[productID]
	if !ok {
		return Product{}, false
	}
	return s.products[i], true
}

// Products returns a copy of the snapshot contents in catalog order.
func (s Snapshot) Products() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len reports the number of products in the snapshot.
func (s Snapshot) Len() int { return len(s.products) }

// Empty reports whether the snapshot holds no products.
func (s Snapshot) Empty() bool { return len(s.products) == 0 }
