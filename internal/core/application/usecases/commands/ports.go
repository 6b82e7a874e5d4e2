// Package commands contains business operations that modify pizzeria state.
// Every command is built through its constructor and handled by a dedicated
// handler: validation first, then a single call into the pizzeria.
package commands

import (
	"context"

	"pizzeria/internal/core/domain/model/order"
)

type (
	// OrderSubmitter accepts new orders.
	OrderSubmitter interface {
		Submit(ctx context.Context, pizza string) (order.ID, error)
	}

	// Closer stops order intake.
	Closer interface {
		Close()
	}
)
