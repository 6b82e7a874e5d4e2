package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/order"
)

// OrderRepository keeps every order the pizzeria accepted, whatever its stage,
// so that it can be looked up by id after it left the queue or the storage.
type OrderRepository interface {
	// Add registers a new order. Adding an id twice is an error.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with the given id or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// CountByStatus returns the number of orders per current status.
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
}
