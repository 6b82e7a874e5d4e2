package pizzeria

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"pizzeria/internal/core/domain/model/baker"
	"pizzeria/internal/core/domain/model/courier"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/queue"
	"pizzeria/internal/core/domain/model/storage"
	"pizzeria/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// Pizzeria accepts orders and moves each of them through the queue, a baker,
// the storage and a courier until it is delivered.
//
// Example:
//
//	p, err := pizzeria.New(params, memory.NewOrderRepository(), logger)
//	if err != nil {
//	    return err
//	}
//	go func() { _ = p.Run(ctx) }()
//	id, err := p.Submit(ctx, "margherita")
//	...
//	p.Close()
//	<-p.Done()
type Pizzeria struct {
	params Params
	logger *slog.Logger
	orders ports.OrderRepository

	queue   *queue.OrderQueue
	storage *storage.Storage

	bakerManager   *BakerManager
	courierManager *CourierManager

	// mu serializes Submit and Close.
	mu     sync.Mutex
	nextID order.ID
	open   atomic.Bool
	closed chan struct{}

	submitted atomic.Int64
	delivered atomic.Int64

	running atomic.Bool
	halt    chan struct{}
	done    chan struct{}
}

// New builds a pizzeria with one baker per baking time and one courier per
// route. Zero bakers or zero couriers are accepted; such a pizzeria cannot
// drain and Run reports it after DrainTimeout.
func New(params Params, orders ports.OrderRepository, logger *slog.Logger) (*Pizzeria, error) {
	if orders == nil {
		return nil, errors.New("order repository is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	shelf, err := storage.NewStorage(params.StorageCapacity)
	if err != nil {
		return nil, err
	}

	bakers, err := newBakers(params.Bakers)
	if err != nil {
		return nil, err
	}
	couriers, err := newCouriers(params.Couriers)
	if err != nil {
		return nil, err
	}

	p := &Pizzeria{
		params:  params,
		logger:  logger.With("component", "pizzeria"),
		orders:  orders,
		queue:   queue.NewOrderQueue(),
		storage: shelf,
		closed:  make(chan struct{}),
		halt:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	p.open.Store(true)
	for _, b := range bakers {
		p.logger.Debug("baker hired", "worker", b.String(), "baking_time", b.BakingTime())
	}
	for _, c := range couriers {
		p.logger.Debug("courier hired", "worker", c.String(),
			"speed", c.Speed(), "distance", c.Distance(), "delivery_time", c.DeliveryTime())
	}
	p.bakerManager = newBakerManager(p, bakers, logger)
	p.courierManager = newCourierManager(p, couriers, logger)

	return p, nil
}

func newBakers(bakingTimes []int) ([]*baker.Baker, error) {
	bakers := make([]*baker.Baker, 0, len(bakingTimes))
	for i, t := range bakingTimes {
		b, err := baker.NewBaker(kernel.NewUUID(), fmt.Sprintf("baker-%d", i+1), t)
		if err != nil {
			return nil, fmt.Errorf("baker %d: %w", i+1, err)
		}
		bakers = append(bakers, b)
	}
	return bakers, nil
}

func newCouriers(routes []CourierParams) ([]*courier.Courier, error) {
	couriers := make([]*courier.Courier, 0, len(routes))
	for i, r := range routes {
		c, err := courier.NewCourier(kernel.NewUUID(), fmt.Sprintf("courier-%d", i+1), r.Speed, r.Distance)
		if err != nil {
			return nil, fmt.Errorf("courier %d: %w", i+1, err)
		}
		couriers = append(couriers, c)
	}
	return couriers, nil
}

// Submit registers a new order for pizza and queues it. It returns ErrRejected
// once the pizzeria is closed.
func (p *Pizzeria) Submit(ctx context.Context, pizza string) (order.ID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open.Load() {
		return 0, ErrRejected
	}

	o, err := order.NewOrder(p.nextID+1, pizza)
	if err != nil {
		return 0, err
	}
	if err = p.orders.Add(ctx, o); err != nil {
		return 0, err
	}
	p.nextID = o.ID()

	p.submitted.Add(1)
	p.queue.Enqueue(o)
	p.logTransition(o, "")

	return o.ID(), nil
}

// Close stops accepting orders. Orders already accepted are still delivered.
// Calling Close more than once has no further effect.
func (p *Pizzeria) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.open.CompareAndSwap(true, false) {
		close(p.closed)
		p.logger.Info("pizzeria closed", "submitted", p.submitted.Load())
	}
}

// IsOpen reports whether Submit accepts orders.
func (p *Pizzeria) IsOpen() bool {
	return p.open.Load()
}

// Run starts both stage managers and blocks until every accepted order is
// delivered after Close. Cancelling ctx closes the pizzeria; work in flight
// still completes. The error joins the ShutdownTimeoutError of every stage
// that failed to drain.
func (p *Pizzeria) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(p.done)

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			p.logger.InfoContext(ctx, "context cancelled, closing pizzeria", "cause", context.Cause(ctx))
			p.Close()
		case <-stop:
		}
	}()

	p.logger.InfoContext(ctx, "pizzeria running",
		"bakers", p.bakerManager.Workers(),
		"couriers", p.courierManager.Workers(),
		"storage_capacity", p.storage.Capacity(),
	)

	var (
		g                   errgroup.Group
		bakeErr, deliverErr error
	)
	g.Go(func() error {
		bakeErr = p.bakerManager.Run()
		return bakeErr
	})
	g.Go(func() error {
		deliverErr = p.courierManager.Run()
		return deliverErr
	})

	waitErr := g.Wait()
	close(stop)

	if waitErr != nil {
		close(p.halt)
		err := errors.Join(bakeErr, deliverErr)
		p.logger.Error("pizzeria stopped before draining", "error", err, "stats", p.Stats())
		return err
	}

	p.logger.Info("pizzeria drained", "delivered", p.delivered.Load())
	return nil
}

// Done returns a channel closed when Run returns.
func (p *Pizzeria) Done() <-chan struct{} {
	return p.done
}

// Stats returns a snapshot of counters and stage states.
func (p *Pizzeria) Stats() Stats {
	return Stats{
		Open:            p.IsOpen(),
		Submitted:       p.submitted.Load(),
		Delivered:       p.delivered.Load(),
		Queued:          p.queue.Len(),
		Stored:          p.storage.Len(),
		StorageCapacity: p.storage.Capacity(),
		StoragePeak:     p.storage.Peak(),
		StorageFull:     !p.storage.CanAdd(),
		Bakers:          p.bakerManager.Workers(),
		BusyBakers:      p.busyBakers(),
		Couriers:        p.courierManager.Workers(),
		BusyCouriers:    p.courierManager.Busy(),
		BakerManager:    p.bakerManager.State(),
		CourierManager:  p.courierManager.State(),
	}
}

func (p *Pizzeria) busyBakers() int {
	return p.bakerManager.Busy()
}

// pause sleeps for d. It returns false if the pizzeria halted meanwhile.
func (p *Pizzeria) pause(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-p.halt:
		return false
	}
}

func (p *Pizzeria) logTransition(o *order.Order, worker string) {
	p.logger.Debug("order transition", "order_id", o.ID(), "status", o.Status(), "worker", worker)
}
