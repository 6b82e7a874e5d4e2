// Package queue provides the pizzeria intake queue.
package queue

import (
	"sync"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/notify"
)

// OrderQueue is an unbounded FIFO of Queued orders waiting for a free baker.
// All methods are safe for concurrent use. An order is held at most once:
// enqueueing an order that is already queued is a no-op.
type OrderQueue struct {
	mu      sync.Mutex
	orders  []*order.Order
	members map[order.ID]struct{}
	signal  notify.Signal
}

// NewOrderQueue creates an empty queue.
func NewOrderQueue() *OrderQueue {
	return &OrderQueue{
		members: make(map[order.ID]struct{}),
	}
}

// Enqueue appends the order to the tail of the queue. It never blocks.
func (q *OrderQueue) Enqueue(o *order.Order) {
	if o == nil {
		return
	}

	q.mu.Lock()
	if _, ok := q.members[o.ID()]; ok {
		q.mu.Unlock()
		return
	}
	q.orders = append(q.orders, o)
	q.members[o.ID()] = struct{}{}
	q.mu.Unlock()

	q.signal.Broadcast()
}

// TryDequeue removes and returns the oldest order, or false when the queue is empty.
func (q *OrderQueue) TryDequeue() (*order.Order, bool) {
	q.mu.Lock()
	if len(q.orders) == 0 {
		q.mu.Unlock()
		return nil, false
	}

	o := q.orders[0]
	q.orders[0] = nil
	q.orders = q.orders[1:]
	delete(q.members, o.ID())
	q.mu.Unlock()

	q.signal.Broadcast()
	return o, true
}

// IsEmpty reports whether no order is waiting.
func (q *OrderQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Len returns the number of waiting orders.
func (q *OrderQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.orders)
}

// Changed returns a channel closed on the next enqueue or dequeue.
func (q *OrderQueue) Changed() <-chan struct{} {
	return q.signal.Changed()
}
