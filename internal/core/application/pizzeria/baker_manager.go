package pizzeria

import (
	"log/slog"

	"pizzeria/internal/core/domain/model/baker"
)

const bakingStage = "baking"

// BakerManager feeds queued orders to free bakers.
// It terminates once the pizzeria is closed and the queue is empty.
type BakerManager struct {
	*manager[*baker.Baker]
}

func newBakerManager(p *Pizzeria, bakers []*baker.Baker, logger *slog.Logger) *BakerManager {
	st := stage[*baker.Baker]{
		name:     bakingStage,
		hasWork:  func() bool { return !p.queue.IsEmpty() },
		finished: p.queue.IsEmpty,
		pending:  func() int { return p.queue.Len() + p.busyBakers() },
		changed:  p.queue.Changed,
		run:      p.bake,
	}
	return &BakerManager{
		manager: newManager(st, bakers, p.closed, p.params, logger.With("component", "baker_manager")),
	}
}
