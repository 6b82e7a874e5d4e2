package commands

import (
	"context"

	"pizzeria/internal/core/domain/model/order"
)

// SubmitOrderCommandHandler hands validated orders to the pizzeria.
type SubmitOrderCommandHandler struct {
	submitter OrderSubmitter
}

// NewSubmitOrderCommandHandler creates a handler submitting to submitter.
func NewSubmitOrderCommandHandler(submitter OrderSubmitter) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{submitter: submitter}
}

// Handle submits the order and returns its id. Once the pizzeria is closed
// the error matches pizzeria.ErrRejected.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (order.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	return h.submitter.Submit(ctx, cmd.Pizza())
}
