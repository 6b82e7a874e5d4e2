package courier

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

// Domain errors for courier construction.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is a worker of the delivery stage. It takes one pizza from the
// storage, rides its route and comes back free.
//
// Business rules:
//   - Courier must have a valid UUID, non-empty name, positive speed and positive distance
//   - one delivery takes ceil(distance / speed) time units
//   - a courier is either free or busy; claiming is a single compare-and-set
//
// Example usage:
//
//	c, err := courier.NewCourier(kernel.NewUUID(), "courier-1", 2, 10)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(c.DeliveryTime()) // 5
type Courier struct {
	id        kernel.UUID
	name      string
	speed     int
	distance  int
	busy      atomic.Bool
	processed atomic.Int64
	guard     guard.ConstructorGuard
}

// NewCourier creates a free courier riding a route of the given distance at the given speed.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: human-readable name (must be non-empty)
//   - speed: distance covered per time unit (must be positive)
//   - distance: route length per delivery (must be positive)
//
// All invalid parameters are reported together.
func NewCourier(id kernel.UUID, name string, speed, distance int) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setSpeed(speed),
		c.setDistance(distance),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks if the Courier was properly constructed using NewCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the human-readable name of the courier.
func (c *Courier) Name() string {
	return c.name
}

// Speed returns the distance covered per time unit.
func (c *Courier) Speed() int {
	return c.speed
}

// Distance returns the route length of one delivery.
func (c *Courier) Distance() int {
	return c.distance
}

// DeliveryTime returns the number of whole time units one delivery takes.
func (c *Courier) DeliveryTime() int {
	return (c.distance + c.speed - 1) / c.speed
}

// DeliveryDuration converts the delivery time into wall time for the given unit.
func (c *Courier) DeliveryDuration(unit time.Duration) time.Duration {
	return time.Duration(c.DeliveryTime()) * unit
}

// TryClaim atomically marks a free courier busy. It returns false if the
// courier was already busy.
func (c *Courier) TryClaim() bool {
	return c.busy.CompareAndSwap(false, true)
}

// Release marks the courier free again.
func (c *Courier) Release() {
	c.busy.Store(false)
}

// IsFree reports whether the courier can be claimed right now.
func (c *Courier) IsFree() bool {
	return !c.busy.Load()
}

// MarkProcessed records one completed delivery.
func (c *Courier) MarkProcessed() {
	c.processed.Add(1)
}

// Processed returns the number of completed deliveries.
func (c *Courier) Processed() int64 {
	return c.processed.Load()
}

// String implements fmt.Stringer.
func (c *Courier) String() string {
	return fmt.Sprintf("%s(%s)", c.name, c.id.Short())
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Courier) setSpeed(speed int) error {
	if speed <= 0 {
		return errs.NewValueIsOutOfRangeError("speed", speed, 1, math.MaxInt)
	}

	c.speed = speed
	return nil
}

func (c *Courier) setDistance(distance int) error {
	if distance <= 0 {
		return errs.NewValueIsOutOfRangeError("distance", distance, 1, math.MaxInt)
	}

	c.distance = distance
	return nil
}
