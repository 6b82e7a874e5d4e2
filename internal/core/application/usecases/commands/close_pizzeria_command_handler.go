package commands

import (
	"context"
	"log/slog"
)

// ClosePizzeriaCommandHandler closes the pizzeria. Handling it twice is harmless.
type ClosePizzeriaCommandHandler struct {
	closer Closer
	logger *slog.Logger
}

// NewClosePizzeriaCommandHandler creates a handler closing closer.
func NewClosePizzeriaCommandHandler(closer Closer, logger *slog.Logger) ClosePizzeriaCommandHandler {
	return ClosePizzeriaCommandHandler{closer: closer, logger: logger}
}

// Handle closes the pizzeria.
func (h ClosePizzeriaCommandHandler) Handle(ctx context.Context, cmd ClosePizzeriaCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if h.logger != nil {
		h.logger.InfoContext(ctx, "close requested", "reason", cmd.Reason())
	}
	h.closer.Close()
	return nil
}
