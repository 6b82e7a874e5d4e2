package pizzeria

import (
	"errors"
	"math"
	"time"

	"pizzeria/internal/pkg/errs"
)

// CourierParams describes one courier route.
type CourierParams struct {
	Speed    int
	Distance int
}

// Params configures a Pizzeria.
type Params struct {
	// Bakers holds one baking time, in time units, per baker.
	Bakers []int
	// Couriers holds one route per courier.
	Couriers []CourierParams
	// StorageCapacity bounds the number of pizzas waiting for a courier.
	StorageCapacity int

	// TimeUnit is the wall time of one simulated time unit.
	TimeUnit time.Duration
	// IdleWait bounds how long a manager sleeps without any event.
	IdleWait time.Duration
	// StorageRetryBackoff bounds how long a baker waits between two attempts on a full storage.
	StorageRetryBackoff time.Duration
	// DrainTimeout is how long a closed stage may go without progress before giving up.
	// It must exceed the slowest single bake or delivery.
	DrainTimeout time.Duration
	// ShutdownTimeout bounds the final wait for running worker tasks once the
	// queue is drained. Bakers still holding a pizza spend it waiting for the
	// storage, so it must exceed the slowest bake plus the time the couriers
	// need to clear a full storage and every held pizza.
	ShutdownTimeout time.Duration
}

// Validate checks the timing parameters against each other. Worker and
// storage values are checked by their own constructors in New.
func (p Params) Validate() error {
	var problems []error

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"time unit", p.TimeUnit},
		{"idle wait", p.IdleWait},
		{"storage retry backoff", p.StorageRetryBackoff},
		{"drain timeout", p.DrainTimeout},
		{"shutdown timeout", p.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			problems = append(problems,
				errs.NewValueIsOutOfRangeError(d.name, d.value, time.Nanosecond, time.Duration(math.MaxInt64)))
		}
	}

	if p.TimeUnit > 0 {
		if task := p.longestTask(); task >= p.DrainTimeout {
			problems = append(problems, errs.NewValueIsOutOfRangeErrorWithCause(
				"drain timeout", p.DrainTimeout, task, time.Duration(math.MaxInt64),
				errors.New("must exceed the longest single bake or delivery")))
		}
		if handOver := p.handOverTime(); handOver >= p.ShutdownTimeout {
			problems = append(problems, errs.NewValueIsOutOfRangeErrorWithCause(
				"shutdown timeout", p.ShutdownTimeout, handOver, time.Duration(math.MaxInt64),
				errors.New("must exceed the time bakers may hold pizzas for a full storage")))
		}
	}

	return errors.Join(problems...)
}

// longestTask returns the wall time of the slowest single bake or delivery.
func (p Params) longestTask() time.Duration {
	return max(p.longestBake(), p.longestDelivery())
}

// handOverTime bounds how long the last baker may hold its pizza once the
// queue is empty: every stored pizza and every other held pizza is delivered
// first, the couriers taking them in turns. Without bakers or couriers there
// is nothing to bound; the drain guard reports such a pizzeria instead.
func (p Params) handOverTime() time.Duration {
	if len(p.Bakers) == 0 || len(p.Couriers) == 0 {
		return 0
	}

	ahead := max(p.StorageCapacity, 0) + len(p.Bakers)
	rounds := (ahead + len(p.Couriers) - 1) / len(p.Couriers)
	return p.longestBake() + time.Duration(rounds)*p.longestDelivery()
}

func (p Params) longestBake() time.Duration {
	longest := 0
	for _, t := range p.Bakers {
		longest = max(longest, t)
	}
	return time.Duration(longest) * p.TimeUnit
}

func (p Params) longestDelivery() time.Duration {
	longest := 0
	for _, r := range p.Couriers {
		if r.Speed > 0 {
			longest = max(longest, (r.Distance+r.Speed-1)/r.Speed)
		}
	}
	return time.Duration(longest) * p.TimeUnit
}
