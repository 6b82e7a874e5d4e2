package queries

import (
	"context"
	"errors"

	"pizzeria/internal/core/application/pizzeria"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/guard"
)

var ErrGetStatsQueryIsNotConstructed = errors.New(
	"GetStatsQuery must be created via NewGetStatsQuery constructor",
)

// StatsProvider exposes pizzeria counters.
type StatsProvider interface {
	Stats() pizzeria.Stats
}

// GetStatsQuery asks for a snapshot of the pizzeria counters.
type GetStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStatsQuery creates a stats query.
func NewGetStatsQuery() GetStatsQuery {
	return GetStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatsQueryIsNotConstructed)
}

// GetStatsQueryResponse is the pizzeria counters plus the number of
// registered orders per status.
type GetStatsQueryResponse struct {
	pizzeria.Stats
	// ByStatus counts orders by current status; every status is present.
	ByStatus map[string]int `json:"by_status"`
	// InFlight counts orders not delivered yet.
	InFlight int `json:"in_flight"`
}

// GetStatsQueryHandler reads the pizzeria counters and the order registry.
type GetStatsQueryHandler struct {
	provider StatsProvider
	orders   ports.OrderRepository
}

// NewGetStatsQueryHandler creates a handler over provider and orders.
func NewGetStatsQueryHandler(provider StatsProvider, orders ports.OrderRepository) GetStatsQueryHandler {
	return GetStatsQueryHandler{provider: provider, orders: orders}
}

// Handle returns the current stats.
func (h GetStatsQueryHandler) Handle(ctx context.Context, query GetStatsQuery) (GetStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStatsQueryResponse{}, err
	}

	counts, err := h.orders.CountByStatus(ctx)
	if err != nil {
		return GetStatsQueryResponse{}, err
	}

	resp := GetStatsQueryResponse{
		Stats:    h.provider.Stats(),
		ByStatus: make(map[string]int, len(order.Lifecycle())),
	}
	for _, status := range order.Lifecycle() {
		n := counts[status]
		resp.ByStatus[status.String()] = n
		if !status.IsFinal() {
			resp.InFlight += n
		}
	}

	return resp, nil
}
