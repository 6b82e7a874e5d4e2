// Package memory holds in-process implementations of the core ports.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// ErrOrderAlreadyExists is returned by Add for an id that is already registered.
var ErrOrderAlreadyExists = errors.New("order already exists")

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository is a map-backed ports.OrderRepository. It stores the
// aggregates themselves, so reads always observe the live status.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[order.ID]*order.Order
}

// NewOrderRepository creates an empty repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[order.ID]*order.Order),
	}
}

// Add registers a new order.
func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[aggregate.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrOrderAlreadyExists, aggregate.ID())
	}
	r.orders[aggregate.ID()] = aggregate
	return nil
}

// Get retrieves an order by id.
func (r *OrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return o, nil
}

// CountByStatus returns the number of orders per current status.
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[order.Status]int, len(order.Lifecycle()))
	for _, o := range r.orders {
		counts[o.Status()]++
	}
	return counts, nil
}
