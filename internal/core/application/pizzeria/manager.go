package pizzeria

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/workerpool"
)

// worker is a baker or a courier as seen by a manager.
type worker interface {
	services.Claimable
	Release()
	IsFree() bool
	Processed() int64
	fmt.Stringer
}

// stage holds what differs between the baking and the delivery manager.
type stage[W worker] struct {
	name string
	// hasWork reports whether an item is waiting for a worker.
	hasWork func() bool
	// finished reports whether nothing is left for this stage once closed.
	finished func() bool
	// pending counts the items this stage still owes.
	pending func() int
	// changed is closed on the next change of the stage input.
	changed func() <-chan struct{}
	// run processes one item with a claimed worker and must release it.
	run func(W)
}

// manager dispatches items of one stage to its free workers.
//
// It is Idle while there is nothing to do, Dispatching while items are
// waiting, Draining once closed with work left and Terminated once closed
// with nothing left. It never polls: between dispatches it waits for the
// stage input to change, a worker to finish, the close signal or IdleWait.
type manager[W worker] struct {
	stage      stage[W]
	dispatcher *services.WorkerDispatcher[W]
	pool       *workerpool.Pool
	closed     <-chan struct{}
	params     Params
	logger     *slog.Logger
	state      atomic.Int32
}

func newManager[W worker](
	st stage[W],
	workers []W,
	closed <-chan struct{},
	params Params,
	logger *slog.Logger,
) *manager[W] {
	return &manager[W]{
		stage:      st,
		dispatcher: services.NewWorkerDispatcher(workers),
		pool:       workerpool.New(len(workers)),
		closed:     closed,
		params:     params,
		logger:     logger,
	}
}

// State returns the current manager state.
func (m *manager[W]) State() ManagerState {
	return ManagerState(m.state.Load())
}

// Workers returns the pool size.
func (m *manager[W]) Workers() int {
	return m.dispatcher.Len()
}

// Busy returns the number of claimed workers.
func (m *manager[W]) Busy() int {
	busy := 0
	for _, w := range m.dispatcher.Workers() {
		if !w.IsFree() {
			busy++
		}
	}
	return busy
}

func (m *manager[W]) setState(s ManagerState) {
	if prev := ManagerState(m.state.Swap(int32(s))); prev != s {
		m.logger.Debug("manager state changed", "from", prev, "to", s)
	}
}

// Run drives the stage until it is closed and drained. It returns a
// ShutdownTimeoutError when the closed stage stops making progress for
// DrainTimeout or when running tasks outlive ShutdownTimeout.
func (m *manager[W]) Run() error {
	closed := false
	lastProgress := time.Now()

	for {
		// take the wake-up channels before reading state so no change is missed
		changed := m.stage.changed()
		released := m.pool.Released()

		if !closed && m.isClosed() {
			closed = true
			lastProgress = time.Now()
		}

		if closed && m.stage.finished() {
			m.setState(Terminated)
			return m.shutdown()
		}

		if m.stage.hasWork() {
			if closed {
				m.setState(Draining)
			} else {
				m.setState(Dispatching)
			}

			dispatched, err := m.dispatch()
			if err != nil {
				return err
			}
			if dispatched {
				lastProgress = time.Now()
				continue
			}
		} else if closed {
			m.setState(Draining)
		} else {
			m.setState(Idle)
		}

		wait := m.params.IdleWait
		closeSignal := m.closed
		if closed {
			closeSignal = nil
			remaining := m.params.DrainTimeout - time.Since(lastProgress)
			if remaining <= 0 {
				return m.stall()
			}
			wait = min(wait, remaining)
		}

		timer := time.NewTimer(wait)
		select {
		case <-changed:
			lastProgress = time.Now()
		case <-released:
			lastProgress = time.Now()
		case <-closeSignal:
		case <-timer.C:
		}
		timer.Stop()
	}
}

func (m *manager[W]) dispatch() (bool, error) {
	w, err := m.dispatcher.Claim()
	if errors.Is(err, services.ErrNoFreeWorker) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err = m.pool.Go(func() { m.stage.run(w) }); err != nil {
		w.Release()
		return false, fmt.Errorf("%s stage: %w", m.stage.name, err)
	}

	m.logger.Debug("worker dispatched", "worker", w.String())
	return true, nil
}

func (m *manager[W]) isClosed() bool {
	select {
	case <-m.closed:
		return true
	default:
		return false
	}
}

func (m *manager[W]) stall() error {
	m.setState(Terminated)
	err := &ShutdownTimeoutError{
		Stage:   m.stage.name,
		Pending: m.stage.pending(),
		Timeout: m.params.DrainTimeout,
	}
	m.logger.Error("stage stopped making progress", "error", err, "workers", m.Workers())
	return err
}

func (m *manager[W]) shutdown() error {
	if err := m.pool.Shutdown(m.params.ShutdownTimeout); err != nil {
		timeoutErr := &ShutdownTimeoutError{
			Stage:   m.stage.name,
			Pending: m.stage.pending(),
			Timeout: m.params.ShutdownTimeout,
			Cause:   err,
		}
		m.logger.Error("worker pool did not stop in time", "error", timeoutErr)
		return timeoutErr
	}

	processed := make(map[string]int64, m.Workers())
	for _, w := range m.dispatcher.Workers() {
		processed[w.String()] = w.Processed()
	}
	m.logger.Info("stage terminated", "processed", processed)
	return nil
}
