package baker

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

// Domain errors for baker construction.
var (
	// ErrNameIsRequired is returned when attempting to create a baker without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrBakerIsNotConstructed is returned when using an improperly initialized Baker.
	ErrBakerIsNotConstructed = errors.New("Baker must be created via NewBaker constructor")
)

// Baker is a worker of the baking stage. It bakes one pizza at a time and
// then keeps hold of it until the storage accepts it.
//
// Business rules:
//   - Baker must have a valid UUID, non-empty name and positive baking time
//   - a baker is either free or busy; the switch free->busy is a single
//     compare-and-set, so two dispatchers can never claim the same baker
//   - only the baker's own run releases it
//
// Example usage:
//
//	b, err := baker.NewBaker(kernel.NewUUID(), "baker-1", 3)
//	if err != nil {
//	    return err
//	}
//	if b.TryClaim() {
//	    // b is now exclusively ours until Release
//	}
type Baker struct {
	id         kernel.UUID
	name       string
	bakingTime int
	busy       atomic.Bool
	processed  atomic.Int64
	guard      guard.ConstructorGuard
}

// NewBaker creates a free baker that needs bakingTime time units per pizza.
func NewBaker(id kernel.UUID, name string, bakingTime int) (*Baker, error) {
	b := &Baker{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setName(name),
		b.setBakingTime(bakingTime),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate checks if the Baker was properly constructed using NewBaker.
func (b *Baker) Validate() error {
	if b == nil {
		return ErrBakerIsNotConstructed
	}
	return b.guard.Validate(ErrBakerIsNotConstructed)
}

// ID returns the unique identifier of the baker.
func (b *Baker) ID() kernel.UUID {
	return b.id
}

// Name returns the human-readable name of the baker.
func (b *Baker) Name() string {
	return b.name
}

// BakingTime returns the number of time units needed for one pizza.
func (b *Baker) BakingTime() int {
	return b.bakingTime
}

// BakingDuration converts the baking time into wall time for the given unit.
func (b *Baker) BakingDuration(unit time.Duration) time.Duration {
	return time.Duration(b.bakingTime) * unit
}

// TryClaim atomically marks a free baker busy. It returns false if the baker
// was already busy.
func (b *Baker) TryClaim() bool {
	return b.busy.CompareAndSwap(false, true)
}

// Release marks the baker free again.
func (b *Baker) Release() {
	b.busy.Store(false)
}

// IsFree reports whether the baker can be claimed right now.
func (b *Baker) IsFree() bool {
	return !b.busy.Load()
}

// MarkProcessed records one pizza handed over to the storage.
func (b *Baker) MarkProcessed() {
	b.processed.Add(1)
}

// Processed returns the number of pizzas this baker has stored.
func (b *Baker) Processed() int64 {
	return b.processed.Load()
}

// String implements fmt.Stringer.
func (b *Baker) String() string {
	return fmt.Sprintf("%s(%s)", b.name, b.id.Short())
}

func (b *Baker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	b.id = id
	return nil
}

func (b *Baker) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	b.name = name
	return nil
}

func (b *Baker) setBakingTime(bakingTime int) error {
	if bakingTime <= 0 {
		return errs.NewValueIsOutOfRangeError("baking time", bakingTime, 1, math.MaxInt)
	}

	b.bakingTime = bakingTime
	return nil
}
