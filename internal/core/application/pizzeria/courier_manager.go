package pizzeria

import (
	"log/slog"

	"pizzeria/internal/core/domain/model/courier"
)

const deliveryStage = "delivery"

// CourierManager sends free couriers to the storage.
// It terminates once the pizzeria is closed and every submitted order was delivered.
type CourierManager struct {
	*manager[*courier.Courier]
}

func newCourierManager(p *Pizzeria, couriers []*courier.Courier, logger *slog.Logger) *CourierManager {
	st := stage[*courier.Courier]{
		name:     deliveryStage,
		hasWork:  p.storage.CanRemove,
		finished: func() bool { return p.delivered.Load() == p.submitted.Load() },
		pending:  func() int { return int(p.submitted.Load() - p.delivered.Load()) },
		changed:  p.storage.Changed,
		run:      p.deliver,
	}
	return &CourierManager{
		manager: newManager(st, couriers, p.closed, p.params, logger.With("component", "courier_manager")),
	}
}
