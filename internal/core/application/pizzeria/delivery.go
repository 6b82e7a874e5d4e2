package pizzeria

import (
	"pizzeria/internal/core/domain/model/courier"
)

// deliver takes the oldest stored pizza and rides it to the customer. The
// courier is released on return.
func (p *Pizzeria) deliver(c *courier.Courier) {
	defer c.Release()

	o, ok := p.storage.TryRemove()
	if !ok {
		return
	}

	if err := o.ShipOut(c.Name()); err != nil {
		p.logger.Error("cannot ship order", "order_id", o.ID(), "worker", c.Name(), "error", err)
		return
	}
	p.logTransition(o, c.Name())

	if !p.pause(c.DeliveryDuration(p.params.TimeUnit)) {
		p.logger.Warn("delivery interrupted", "order_id", o.ID(), "worker", c.Name())
		return
	}

	if err := o.Deliver(); err != nil {
		p.logger.Error("cannot deliver order", "order_id", o.ID(), "worker", c.Name(), "error", err)
		return
	}
	p.delivered.Add(1)
	c.MarkProcessed()
	p.logTransition(o, c.Name())
}
