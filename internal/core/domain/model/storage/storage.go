package storage

import (
	"errors"
	"fmt"
	"sync"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/notify"
)

// ErrCapacityExceeded reports a TryInsert on a full storage. It is transient:
// the baker keeps the pizza and retries once a courier frees a slot.
var ErrCapacityExceeded = errors.New("storage capacity exceeded")

// Storage is the bounded shelf between the baking and delivery stages.
//
// Business rules:
//   - 0 <= Len() <= Capacity() at every instant
//   - the capacity check and the insertion are one atomic step, so two bakers
//     can never both see the last free slot
//   - orders leave in insertion order, though couriers may finish out of order
//
// A full storage is the backpressure point of the pipeline: TryInsert fails and
// the baker stays busy holding the pizza until a slot frees.
type Storage struct {
	mu       sync.Mutex
	capacity int
	orders   []*order.Order
	peak     int
	signal   notify.Signal
}

// NewStorage creates an empty storage holding at most capacity orders.
//
// Example:
//
//	shelf, err := storage.NewStorage(5)
//	if err != nil {
//	    return err
//	}
//	if !shelf.TryInsert(o) {
//	    // full, retry later
//	}
func NewStorage(capacity int) (*Storage, error) {
	if capacity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"capacity is invalid",
			fmt.Errorf("%d is not greater than 0", capacity),
		)
	}

	return &Storage{
		capacity: capacity,
		orders:   make([]*order.Order, 0, capacity),
	}, nil
}

// TryInsert stores the order if a slot is free. It returns false, without
// blocking, when the storage is full.
func (s *Storage) TryInsert(o *order.Order) bool {
	if o == nil {
		return false
	}

	s.mu.Lock()
	if len(s.orders) >= s.capacity {
		s.mu.Unlock()
		return false
	}
	s.orders = append(s.orders, o)
	if len(s.orders) > s.peak {
		s.peak = len(s.orders)
	}
	s.mu.Unlock()

	s.signal.Broadcast()
	return true
}

// TryRemove takes the oldest stored order, or returns false when the storage is empty.
func (s *Storage) TryRemove() (*order.Order, bool) {
	s.mu.Lock()
	if len(s.orders) == 0 {
		s.mu.Unlock()
		return nil, false
	}

	o := s.orders[0]
	copy(s.orders, s.orders[1:])
	s.orders[len(s.orders)-1] = nil
	s.orders = s.orders[:len(s.orders)-1]
	s.mu.Unlock()

	s.signal.Broadcast()
	return o, true
}

// CanRemove reports whether at least one order is stored.
func (s *Storage) CanRemove() bool {
	return s.Len() > 0
}

// CanAdd reports whether at least one slot is free.
func (s *Storage) CanAdd() bool {
	return s.Len() < s.capacity
}

// Len returns the number of stored orders.
func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// Capacity returns the maximum number of stored orders.
func (s *Storage) Capacity() int {
	return s.capacity
}

// Peak returns the highest occupancy ever reached.
func (s *Storage) Peak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peak
}

// Changed returns a channel closed on the next insertion or removal.
func (s *Storage) Changed() <-chan struct{} {
	return s.signal.Changed()
}
