package engine

import (
	"fmt"

	"flowex/internal/domain"
)

// Registry maps order ids to their master records. Membership is
// append-only: records are mutated in place but never removed, so every
// order ever submitted stays resolvable for reporting.
type Registry struct {
	orders map[string]*domain.Order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{orders: make(map[string]*domain.Order)}
}

// Register inserts a new order record. Ids are assigned sequentially by
// the caller and must be unique; a duplicate is a caller contract
// violation, and continuing would corrupt book state.
func (r *Registry) Register(o *domain.Order) {
	if _, ok := r.orders[o.ID]; ok {
		panic(fmt.Sprintf("DUPLICATE_ORDER_ID: %s", o.ID))
	}
	r.orders[o.ID] = o
}

// Lookup returns the mutable record for an order id.
func (r *Registry) Lookup(id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	return o, nil
}

// Len returns the number of registered orders.
func (r *Registry) Len() int {
	return len(r.orders)
}
