package queries

import (
	"context"

	"pizzeria/internal/core/ports"
)

// GetOrderQueryHandler reads orders from the repository.
type GetOrderQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetOrderQueryHandler creates a handler over orders.
func NewGetOrderQueryHandler(orders ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle returns the order view or an errs.ObjectNotFoundError for an unknown id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.ID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	snap := o.Snapshot()
	resp := GetOrderQueryResponse{
		ID:          snap.ID,
		Pizza:       snap.Pizza,
		Status:      snap.Status.String(),
		BakedBy:     snap.BakedBy,
		DeliveredBy: snap.DeliveredBy,
		Transitions: make([]TransitionResponse, 0, len(snap.Transitions)),
	}
	for _, tr := range snap.Transitions {
		resp.Transitions = append(resp.Transitions, TransitionResponse{Status: tr.Status.String(), At: tr.At})
	}

	return resp, nil
}
