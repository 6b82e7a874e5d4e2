// Package workerpool runs worker tasks on a bounded set of goroutines and
// joins them with a deadline on shutdown.
package workerpool

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"pizzeria/internal/pkg/notify"

	"github.com/sourcegraph/conc/pool"
)

var (
	// ErrShutdownTimeout is returned by Shutdown when tasks are still running at the deadline.
	ErrShutdownTimeout = errors.New("worker pool shutdown timed out")
	// ErrPoolClosed is returned by Go after Shutdown was called.
	ErrPoolClosed = errors.New("worker pool is closed")
	// ErrNoCapacity is returned by Go on a pool created with size 0.
	ErrNoCapacity = errors.New("worker pool has no capacity")
)

// Pool is a bounded goroutine pool. Each finished task broadcasts on
// Released, which lets a dispatcher wait for a free worker without polling.
type Pool struct {
	mu       sync.Mutex
	pool     *pool.Pool
	closed   bool
	drained  chan struct{}
	active   atomic.Int64
	released notify.Signal
}

// New creates a pool running at most size tasks at once. A size of 0 is
// allowed and yields a pool that accepts no task.
func New(size int) *Pool {
	p := &Pool{}
	if size > 0 {
		p.pool = pool.New().WithMaxGoroutines(size)
	}
	return p
}

// Go schedules task. It blocks while all goroutines are busy.
func (p *Pool) Go(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}
	if p.pool == nil {
		return ErrNoCapacity
	}

	p.active.Add(1)
	p.pool.Go(func() {
		defer func() {
			p.active.Add(-1)
			p.released.Broadcast()
		}()
		task()
	})
	return nil
}

// Active returns the number of tasks scheduled and not yet finished.
func (p *Pool) Active() int {
	return int(p.active.Load())
}

// Released returns a channel closed when the next task finishes.
func (p *Pool) Released() <-chan struct{} {
	return p.released.Changed()
}

// Shutdown stops accepting tasks and waits up to timeout for the running ones.
// On timeout the tasks are left running and ErrShutdownTimeout is returned.
// Calling Shutdown again waits again on the same tasks.
func (p *Pool) Shutdown(timeout time.Duration) error {
	p.mu.Lock()
	p.closed = true
	if p.pool == nil {
		p.mu.Unlock()
		return nil
	}
	if p.drained == nil {
		p.drained = make(chan struct{})
		go func(inner *pool.Pool, drained chan struct{}) {
			defer close(drained)
			inner.Wait()
		}(p.pool, p.drained)
	}
	done := p.drained
	p.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w after %s: %d task(s) still running", ErrShutdownTimeout, timeout, p.Active())
	}
}
