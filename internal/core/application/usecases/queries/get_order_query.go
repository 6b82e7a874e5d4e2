// Package queries contains read-only operations over the pizzeria state.
package queries

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery looks up one order by id.
//
// Example:
//
//	query, err := NewGetOrderQuery(7)
//	if err != nil {
//	    return err
//	}
//	resp, err := NewGetOrderQueryHandler(repo).Handle(ctx, query)
type GetOrderQuery struct {
	id order.ID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the order with the given id.
func NewGetOrderQuery(id order.ID) (GetOrderQuery, error) {
	if id == 0 {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("id")
	}
	return GetOrderQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// ID returns the requested order id.
func (q GetOrderQuery) ID() order.ID {
	return q.id
}

// TransitionResponse is one entry of an order history.
type TransitionResponse struct {
	Status string
	At     time.Time
}

// GetOrderQueryResponse is a consistent view of one order.
type GetOrderQueryResponse struct {
	ID          order.ID
	Pizza       string
	Status      string
	BakedBy     string
	DeliveredBy string
	Transitions []TransitionResponse
}
