package pizzeria

import (
	"time"

	"pizzeria/internal/core/domain/model/baker"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/storage"
)

// bake runs one order through a claimed baker: dequeue, bake, then hold the
// pizza until the storage takes it. The baker is released on return.
func (p *Pizzeria) bake(b *baker.Baker) {
	defer b.Release()

	o, ok := p.queue.TryDequeue()
	if !ok {
		return
	}

	if err := o.StartBaking(b.Name()); err != nil {
		p.logger.Error("cannot start baking", "order_id", o.ID(), "worker", b.Name(), "error", err)
		return
	}
	p.logTransition(o, b.Name())

	if !p.pause(b.BakingDuration(p.params.TimeUnit)) {
		p.logger.Warn("baking interrupted", "order_id", o.ID(), "worker", b.Name())
		return
	}

	if err := o.Store(); err != nil {
		p.logger.Error("cannot store pizza", "order_id", o.ID(), "worker", b.Name(), "error", err)
		return
	}

	if !p.putIntoStorage(o, b.Name()) {
		return
	}
	p.logTransition(o, b.Name())
	b.MarkProcessed()
}

// putIntoStorage retries until the storage accepts o. It gives up only when
// the pizzeria halts after a failed shutdown.
func (p *Pizzeria) putIntoStorage(o *order.Order, worker string) bool {
	for attempt := 1; ; attempt++ {
		changed := p.storage.Changed()
		if p.storage.TryInsert(o) {
			return true
		}

		if attempt == 1 {
			p.logger.Debug("holding pizza",
				"order_id", o.ID(), "worker", worker, "reason", storage.ErrCapacityExceeded)
		}

		timer := time.NewTimer(p.params.StorageRetryBackoff)
		select {
		case <-changed:
		case <-timer.C:
		case <-p.halt:
			timer.Stop()
			p.logger.Error("pizza abandoned on halt",
				"order_id", o.ID(), "worker", worker, "attempts", attempt)
			return false
		}
		timer.Stop()
	}
}
