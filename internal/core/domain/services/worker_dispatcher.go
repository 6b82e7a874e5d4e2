package services

import (
	"errors"
	"sync"
)

// ErrNoFreeWorker is returned when every worker of the pool is busy.
var ErrNoFreeWorker = errors.New("no free worker")

// Claimable is a worker that can be switched from free to busy in one atomic step.
type Claimable interface {
	TryClaim() bool
}

// WorkerDispatcher picks the next free worker of a fixed pool.
//
// Selection is round-robin: the search starts right after the worker claimed
// last, so a fast worker that frees up immediately cannot starve the others.
// Claiming goes through the worker's own compare-and-set, so a worker returned
// by Claim is exclusively owned by the caller until it releases itself.
//
// Example usage:
//
//	dispatcher := services.NewWorkerDispatcher(bakers)
//	b, err := dispatcher.Claim()
//	if errors.Is(err, services.ErrNoFreeWorker) {
//	    // wait for a release
//	}
type WorkerDispatcher[T Claimable] struct {
	mu      sync.Mutex
	workers []T
	next    int
}

// NewWorkerDispatcher creates a dispatcher over a copy of workers.
func NewWorkerDispatcher[T Claimable](workers []T) *WorkerDispatcher[T] {
	out := make([]T, len(workers))
	copy(out, workers)
	return &WorkerDispatcher[T]{workers: out}
}

// Claim returns a free worker, already marked busy, or ErrNoFreeWorker.
func (d *WorkerDispatcher[T]) Claim() (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := len(d.workers)
	for i := range n {
		idx := (d.next + i) % n
		w := d.workers[idx]
		if w.TryClaim() {
			d.next = (idx + 1) % n
			return w, nil
		}
	}

	var zero T
	return zero, ErrNoFreeWorker
}

// Workers returns a copy of the pool.
func (d *WorkerDispatcher[T]) Workers() []T {
	out := make([]T, len(d.workers))
	copy(out, d.workers)
	return out
}

// Len returns the pool size.
func (d *WorkerDispatcher[T]) Len() int {
	return len(d.workers)
}
