package order

import (
	"errors"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

// pizzaMaxLength bounds the free-form pizza name carried by an order.
const pizzaMaxLength = 64

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrPizzaIsRequired is returned when an order is submitted without a pizza.
	ErrPizzaIsRequired = errs.NewValueIsRequiredError("pizza")
)

// ID identifies an order. IDs are assigned sequentially by the pizzeria starting at 1.
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Transition records the moment an order entered a status.
type Transition struct {
	Status Status
	At     time.Time
}

// Order is the unit of work moving through the pizzeria.
//
// An order is mutated only by whoever currently holds it (the queue hands it to
// a baker, the baker to storage, storage to a courier). Readers on other
// goroutines see consistent values through the accessor methods.
type Order struct {
	id    ID
	pizza string

	mu          sync.RWMutex
	status      Status
	transitions []Transition
	bakedBy     string
	deliveredBy string

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Queued status and records the Queued transition.
//
// Example:
//
//	o, err := order.NewOrder(1, "margherita")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(o.Status()) // Queued
func NewOrder(id ID, pizza string) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(o.setID(id), o.setPizza(pizza)); err != nil {
		return nil, err
	}

	o.status = Queued
	o.transitions = []Transition{{Status: Queued, At: time.Now()}}
	return o, nil
}

// Validate ensures the order was created through NewOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order identifier.
func (o *Order) ID() ID {
	return o.id
}

// Pizza returns the ordered pizza.
func (o *Order) Pizza() string {
	return o.pizza
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status
}

// Transitions returns a copy of the recorded transition log, oldest first.
func (o *Order) Transitions() []Transition {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]Transition, len(o.transitions))
	copy(out, o.transitions)
	return out
}

// BakedBy returns the name of the baker who baked the order, empty until baking starts.
func (o *Order) BakedBy() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.bakedBy
}

// DeliveredBy returns the name of the courier who took the order out, empty until then.
func (o *Order) DeliveredBy() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.deliveredBy
}

// StartBaking moves the order from Queued to Baking on behalf of the named baker.
func (o *Order) StartBaking(baker string) error {
	return o.transition(Status.StartBaking, func() { o.bakedBy = baker })
}

// Store moves the order from Baking to Stored.
func (o *Order) Store() error {
	return o.transition(Status.Store, nil)
}

// ShipOut moves the order from Stored to OutForDelivery on behalf of the named courier.
func (o *Order) ShipOut(courier string) error {
	return o.transition(Status.ShipOut, func() { o.deliveredBy = courier })
}

// Deliver moves the order from OutForDelivery to Delivered.
func (o *Order) Deliver() error {
	return o.transition(Status.Deliver, nil)
}

// Snapshot is a point-in-time copy of an order, safe to hand to other layers.
type Snapshot struct {
	ID          ID
	Pizza       string
	Status      Status
	BakedBy     string
	DeliveredBy string
	Transitions []Transition
}

// Snapshot returns a consistent copy of the order state.
func (o *Order) Snapshot() Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()

	transitions := make([]Transition, len(o.transitions))
	copy(transitions, o.transitions)

	return Snapshot{
		ID:          o.id,
		Pizza:       o.pizza,
		Status:      o.status,
		BakedBy:     o.bakedBy,
		DeliveredBy: o.deliveredBy,
		Transitions: transitions,
	}
}

func (o *Order) transition(next func(Status) (Status, error), apply func()) error {
	if err := o.Validate(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	status, err := next(o.status)
	if err != nil {
		return err
	}

	o.status = status
	o.transitions = append(o.transitions, Transition{Status: status, At: time.Now()})
	if apply != nil {
		apply()
	}
	return nil
}

func (o *Order) setID(id ID) error {
	if id == 0 {
		return errs.NewValueIsRequiredError("id")
	}
	o.id = id
	return nil
}

func (o *Order) setPizza(pizza string) error {
	if pizza == "" {
		return ErrPizzaIsRequired
	}
	if n := utf8.RuneCountInString(pizza); n > pizzaMaxLength {
		return errs.NewValueIsOutOfRangeError("pizza length", n, 1, pizzaMaxLength)
	}
	o.pizza = pizza
	return nil
}
