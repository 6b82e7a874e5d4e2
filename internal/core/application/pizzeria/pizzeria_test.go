package pizzeria_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/memory"
	"pizzeria/internal/core/application/pizzeria"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const runTimeout = 10 * time.Second

type PizzeriaSuite struct {
	suite.Suite

	repo   *memory.OrderRepository
	logger *slog.Logger
}

func TestPizzeriaSuite(t *testing.T) {
	suite.Run(t, new(PizzeriaSuite))
}

func (s *PizzeriaSuite) SetupTest() {
	s.repo = memory.NewOrderRepository()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastParams() pizzeria.Params {
	return pizzeria.Params{
		Bakers:              []int{1, 2, 1},
		Couriers:            []pizzeria.CourierParams{{Speed: 2, Distance: 3}, {Speed: 1, Distance: 1}},
		StorageCapacity:     2,
		TimeUnit:            time.Millisecond,
		IdleWait:            5 * time.Millisecond,
		StorageRetryBackoff: time.Millisecond,
		DrainTimeout:        time.Second,
		ShutdownTimeout:     time.Second,
	}
}

func (s *PizzeriaSuite) newPizzeria(params pizzeria.Params) *pizzeria.Pizzeria {
	p, err := pizzeria.New(params, s.repo, s.logger)
	s.Require().NoError(err)
	return p
}

// start runs p in the background and returns the channel receiving Run's result.
func (s *PizzeriaSuite) start(ctx context.Context, p *pizzeria.Pizzeria) <-chan error {
	result := make(chan error, 1)
	go func() { result <- p.Run(ctx) }()
	return result
}

func (s *PizzeriaSuite) wait(result <-chan error) error {
	select {
	case err := <-result:
		return err
	case <-time.After(runTimeout):
		s.FailNow("Run did not return")
		return nil
	}
}

func (s *PizzeriaSuite) submit(p *pizzeria.Pizzeria, n int) []order.ID {
	ids := make([]order.ID, 0, n)
	for range n {
		id, err := p.Submit(s.T().Context(), "margherita")
		s.Require().NoError(err)
		ids = append(ids, id)
	}
	return ids
}

func (s *PizzeriaSuite) assertFullLifecycle(ids []order.ID) {
	for _, id := range ids {
		o, err := s.repo.Get(s.T().Context(), id)
		s.Require().NoError(err)

		var got []order.Status
		for _, tr := range o.Transitions() {
			got = append(got, tr.Status)
		}
		s.Equal(order.Lifecycle(), got, "order %s", id)
		s.NotEmpty(o.BakedBy())
		s.NotEmpty(o.DeliveredBy())
	}
}

func (s *PizzeriaSuite) TestAllSubmittedOrdersAreDelivered() {
	p := s.newPizzeria(fastParams())
	result := s.start(s.T().Context(), p)

	ids := s.submit(p, 20)
	p.Close()

	s.Require().NoError(s.wait(result))

	stats := p.Stats()
	s.Equal(int64(20), stats.Submitted)
	s.Equal(int64(20), stats.Delivered)
	s.Zero(stats.Queued)
	s.Zero(stats.Stored)
	s.Equal(pizzeria.Terminated, stats.BakerManager)
	s.Equal(pizzeria.Terminated, stats.CourierManager)
	s.assertFullLifecycle(ids)

	counts, err := s.repo.CountByStatus(s.T().Context())
	s.Require().NoError(err)
	s.Equal(map[order.Status]int{order.Delivered: 20}, counts)
}

func (s *PizzeriaSuite) TestOrdersSubmittedBeforeRunAreDelivered() {
	p := s.newPizzeria(fastParams())
	ids := s.submit(p, 5)
	p.Close()

	s.Require().NoError(p.Run(s.T().Context()))

	s.Equal(int64(5), p.Stats().Delivered)
	s.assertFullLifecycle(ids)
}

func (s *PizzeriaSuite) TestStorageNeverExceedsCapacity() {
	params := fastParams()
	params.Bakers = []int{1}
	params.Couriers = []pizzeria.CourierParams{{Speed: 1, Distance: 3}}
	params.StorageCapacity = 1
	p := s.newPizzeria(params)

	var overflow atomic.Bool
	sampling := make(chan struct{})
	samplerDone := make(chan struct{})
	go func() {
		defer close(samplerDone)
		for {
			select {
			case <-sampling:
				return
			default:
			}
			if p.Stats().Stored > 1 {
				overflow.Store(true)
			}
			time.Sleep(100 * time.Microsecond)
		}
	}()

	result := s.start(s.T().Context(), p)
	ids := s.submit(p, 3)
	p.Close()
	s.Require().NoError(s.wait(result))
	close(sampling)
	<-samplerDone

	stats := p.Stats()
	s.False(overflow.Load())
	s.Equal(1, stats.StoragePeak)
	s.Equal(int64(3), stats.Delivered)
	s.assertFullLifecycle(ids)
}

func (s *PizzeriaSuite) TestSlowCouriersThrottleBakers() {
	params := fastParams()
	params.Bakers = []int{1, 1, 1, 1}
	params.Couriers = []pizzeria.CourierParams{{Speed: 1, Distance: 5}}
	params.StorageCapacity = 2
	p := s.newPizzeria(params)

	result := s.start(s.T().Context(), p)
	s.submit(p, 12)
	p.Close()
	s.Require().NoError(s.wait(result))

	stats := p.Stats()
	s.Equal(int64(12), stats.Delivered)
	s.LessOrEqual(stats.StoragePeak, stats.StorageCapacity)
}

func (s *PizzeriaSuite) TestSlowCouriersDrainWithinShutdownTimeout() {
	params := fastParams()
	params.TimeUnit = 2 * time.Millisecond
	params.Bakers = []int{1, 1, 1, 1}
	params.Couriers = []pizzeria.CourierParams{{Speed: 1, Distance: 5}}
	params.StorageCapacity = 2
	params.ShutdownTimeout = 100 * time.Millisecond
	s.Require().NoError(params.Validate())
	p := s.newPizzeria(params)

	result := s.start(s.T().Context(), p)
	s.submit(p, 12)
	p.Close()

	s.Require().NoError(s.wait(result), "bakers holding pizzas must hand them over before the pool deadline")
	s.Equal(int64(12), p.Stats().Delivered)
}

func (s *PizzeriaSuite) TestSubmitAfterCloseIsRejected() {
	p := s.newPizzeria(fastParams())
	s.submit(p, 2)
	p.Close()

	id, err := p.Submit(s.T().Context(), "margherita")

	s.Require().ErrorIs(err, pizzeria.ErrRejected)
	s.Zero(id)
	s.Equal(int64(2), p.Stats().Submitted)
	s.Require().NoError(p.Run(s.T().Context()))
}

func (s *PizzeriaSuite) TestInvalidPizzaIsNotCounted() {
	p := s.newPizzeria(fastParams())

	_, err := p.Submit(s.T().Context(), "")

	s.Require().ErrorIs(err, order.ErrPizzaIsRequired)
	s.Zero(p.Stats().Submitted)

	id, err := p.Submit(s.T().Context(), "marinara")
	s.Require().NoError(err)
	s.Equal(order.ID(1), id, "a rejected payload does not consume an id")
}

func (s *PizzeriaSuite) TestWithoutBakersRunReportsShutdownTimeout() {
	params := fastParams()
	params.Bakers = nil
	params.DrainTimeout = 50 * time.Millisecond
	p := s.newPizzeria(params)

	ids := s.submit(p, 2)
	result := s.start(s.T().Context(), p)
	p.Close()

	err := s.wait(result)

	s.Require().ErrorIs(err, pizzeria.ErrShutdownTimeout)
	var timeoutErr *pizzeria.ShutdownTimeoutError
	s.Require().ErrorAs(err, &timeoutErr)
	s.Equal("baking", timeoutErr.Stage)
	s.Equal(2, timeoutErr.Pending)

	for _, id := range ids {
		o, getErr := s.repo.Get(s.T().Context(), id)
		s.Require().NoError(getErr)
		s.Equal(order.Queued, o.Status())
	}
	s.Zero(p.Stats().Delivered)
}

func (s *PizzeriaSuite) TestWithoutCouriersRunReportsShutdownTimeout() {
	params := fastParams()
	params.Couriers = nil
	params.StorageCapacity = 3
	params.DrainTimeout = 50 * time.Millisecond
	p := s.newPizzeria(params)

	s.submit(p, 3)
	result := s.start(s.T().Context(), p)
	p.Close()

	err := s.wait(result)

	var timeoutErr *pizzeria.ShutdownTimeoutError
	s.Require().ErrorAs(err, &timeoutErr)
	s.Equal("delivery", timeoutErr.Stage)
	s.Equal(3, timeoutErr.Pending)
	stats := p.Stats()
	s.Equal(3, stats.Stored)
	s.True(stats.StorageFull)
}

func (s *PizzeriaSuite) TestCloseIsIdempotent() {
	p := s.newPizzeria(fastParams())
	s.True(p.IsOpen())

	p.Close()
	p.Close()

	s.False(p.IsOpen())
	s.Require().NoError(p.Run(s.T().Context()))

	select {
	case <-p.Done():
	default:
		s.Fail("Done is not closed after Run")
	}
}

func (s *PizzeriaSuite) TestRunTwice() {
	p := s.newPizzeria(fastParams())
	p.Close()
	s.Require().NoError(p.Run(s.T().Context()))

	s.Require().ErrorIs(p.Run(s.T().Context()), pizzeria.ErrAlreadyRunning)
}

func (s *PizzeriaSuite) TestContextCancellationClosesAndDrains() {
	p := s.newPizzeria(fastParams())
	ctx, cancel := context.WithCancel(s.T().Context())
	defer cancel()

	result := s.start(ctx, p)
	s.submit(p, 4)
	cancel()

	s.Require().NoError(s.wait(result))
	s.False(p.IsOpen())
	s.Equal(int64(4), p.Stats().Delivered)
}

func (s *PizzeriaSuite) TestConcurrentSubmittersRacingClose() {
	p := s.newPizzeria(fastParams())
	result := s.start(s.T().Context(), p)

	var (
		wg       sync.WaitGroup
		accepted atomic.Int64
	)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				_, err := p.Submit(context.Background(), "capricciosa")
				if errors.Is(err, pizzeria.ErrRejected) {
					return
				}
				if !s.NoError(err) {
					return
				}
				accepted.Add(1)
				time.Sleep(200 * time.Microsecond)
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	p.Close()
	wg.Wait()

	s.Require().NoError(s.wait(result))
	stats := p.Stats()
	s.Equal(accepted.Load(), stats.Submitted)
	s.Equal(stats.Submitted, stats.Delivered)
}

func (s *PizzeriaSuite) TestManagersIdleWhileOpen() {
	p := s.newPizzeria(fastParams())
	result := s.start(s.T().Context(), p)

	s.Eventually(func() bool {
		st := p.Stats()
		return st.BakerManager == pizzeria.Idle && st.CourierManager == pizzeria.Idle
	}, time.Second, time.Millisecond)

	stats := p.Stats()
	s.True(stats.Open)
	s.Equal(3, stats.Bakers)
	s.Equal(2, stats.Couriers)
	s.Zero(stats.BusyBakers)
	s.Zero(stats.BusyCouriers)

	p.Close()
	s.Require().NoError(s.wait(result))
}

func TestNew_InvalidParams(t *testing.T) {
	repo := memory.NewOrderRepository()

	t.Run("storage capacity", func(t *testing.T) {
		params := fastParams()
		params.StorageCapacity = 0

		_, err := pizzeria.New(params, repo, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("baking time", func(t *testing.T) {
		params := fastParams()
		params.Bakers = []int{1, 0}

		_, err := pizzeria.New(params, repo, nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "baker 2")
	})

	t.Run("courier route", func(t *testing.T) {
		params := fastParams()
		params.Couriers = []pizzeria.CourierParams{{Speed: 0, Distance: 1}}

		_, err := pizzeria.New(params, repo, nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("drain timeout shorter than a delivery", func(t *testing.T) {
		params := fastParams()
		params.Couriers = []pizzeria.CourierParams{{Speed: 1, Distance: 2000}}

		_, err := pizzeria.New(params, repo, nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "drain timeout")
	})

	t.Run("zero duration", func(t *testing.T) {
		params := fastParams()
		params.IdleWait = 0

		_, err := pizzeria.New(params, repo, nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "idle wait")
	})

	t.Run("shutdown timeout shorter than the storage hand-over", func(t *testing.T) {
		params := fastParams()
		params.Couriers = []pizzeria.CourierParams{{Speed: 1, Distance: 300}}

		_, err := pizzeria.New(params, repo, nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "shutdown timeout")
	})

	t.Run("repository", func(t *testing.T) {
		_, err := pizzeria.New(fastParams(), nil, nil)

		require.Error(t, err)
	})
}

func TestParams_Validate(t *testing.T) {
	t.Run("accepts consistent timings", func(t *testing.T) {
		assert.NoError(t, fastParams().Validate())
	})

	t.Run("reports every problem in field order", func(t *testing.T) {
		params := fastParams()
		params.IdleWait = 0
		params.DrainTimeout = -time.Second
		params.ShutdownTimeout = 0

		err := params.Validate()

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		msg := err.Error()
		idle := strings.Index(msg, "idle wait")
		drain := strings.Index(msg, "drain timeout")
		shutdown := strings.Index(msg, "shutdown timeout")
		require.True(t, idle >= 0 && drain >= 0 && shutdown >= 0, msg)
		assert.Less(t, idle, drain)
		assert.Less(t, drain, shutdown)
	})

	t.Run("shutdown timeout covers held pizzas", func(t *testing.T) {
		params := fastParams()
		params.TimeUnit = time.Millisecond
		params.Bakers = []int{2, 2}
		params.Couriers = []pizzeria.CourierParams{{Speed: 1, Distance: 10}}
		params.StorageCapacity = 3
		// 2ms bake + 5 deliveries of 10ms ahead of the last held pizza
		params.ShutdownTimeout = 52 * time.Millisecond
		require.ErrorIs(t, params.Validate(), errs.ErrValueIsOutOfRange)

		params.ShutdownTimeout = 53 * time.Millisecond
		assert.NoError(t, params.Validate())
	})

	t.Run("no bound without couriers", func(t *testing.T) {
		params := fastParams()
		params.Couriers = nil
		params.ShutdownTimeout = time.Nanosecond

		assert.NoError(t, params.Validate())
	})
}

func TestShutdownTimeoutError(t *testing.T) {
	cause := errors.New("pool busy")
	err := &pizzeria.ShutdownTimeoutError{Stage: "baking", Pending: 3, Timeout: time.Second, Cause: cause}

	assert.ErrorIs(t, err, pizzeria.ErrShutdownTimeout)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t,
		"shutdown timed out: baking stage still has 3 pending order(s) after 1s (cause: pool busy)",
		err.Error())
}

func TestManagerState_String(t *testing.T) {
	assert.Equal(t, "idle", pizzeria.Idle.String())
	assert.Equal(t, "draining", pizzeria.Draining.String())
	assert.Equal(t, "unknown", pizzeria.ManagerState(42).String())

	text, err := pizzeria.Terminated.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "terminated", string(text))
}
