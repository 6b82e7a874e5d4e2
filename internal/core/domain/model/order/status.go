package order

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// Orders only move forward, one step at a time:
//
//	Queued ──> Baking ──> Stored ──> OutForDelivery ──> Delivered
//
// Each transition method returns the next status or an error when the move is
// not allowed from the current one.
type Status int

const (
	// Unknown is the zero value and is never a valid status.
	Unknown Status = iota

	// Queued orders wait in the order queue for a free baker.
	Queued

	// Baking orders are held by a baker.
	Baking

	// Stored orders are baked and wait in storage for a free courier.
	Stored

	// OutForDelivery orders are held by a courier.
	OutForDelivery

	// Delivered is the final state.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Queued:         "Queued",
		Baking:         "Baking",
		Stored:         "Stored",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
	}
}

// Lifecycle lists the valid statuses in the order every order goes through.
func Lifecycle() []Status {
	return []Status{Queued, Baking, Stored, OutForDelivery, Delivered}
}

// Validate checks that the status is one of the lifecycle statuses.
func (s Status) Validate() error {
	if s < Queued || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Invalid values print as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	return s == Delivered
}

// StartBaking transitions Queued -> Baking.
func (s Status) StartBaking() (Status, error) {
	return s.advance(Queued, Baking)
}

// Store transitions Baking -> Stored.
func (s Status) Store() (Status, error) {
	return s.advance(Baking, Stored)
}

// ShipOut transitions Stored -> OutForDelivery.
func (s Status) ShipOut() (Status, error) {
	return s.advance(Stored, OutForDelivery)
}

// Deliver transitions OutForDelivery -> Delivered.
func (s Status) Deliver() (Status, error) {
	return s.advance(OutForDelivery, Delivered)
}

func (s Status) advance(from, to Status) (Status, error) {
	if s != from {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to move to %s", s, to),
		)
	}
	return to, nil
}
