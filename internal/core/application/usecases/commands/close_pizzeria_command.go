package commands

import (
	"errors"

	"pizzeria/internal/pkg/guard"
)

var ErrClosePizzeriaCommandIsNotConstructed = errors.New(
	"ClosePizzeriaCommand must be created via NewClosePizzeriaCommand constructor",
)

// ClosePizzeriaCommand stops order intake. Accepted orders are still delivered.
type ClosePizzeriaCommand struct {
	reason string

	guard guard.ConstructorGuard
}

// NewClosePizzeriaCommand creates a close command. The reason only ends up in logs.
func NewClosePizzeriaCommand(reason string) ClosePizzeriaCommand {
	return ClosePizzeriaCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ClosePizzeriaCommand) Validate() error {
	return c.guard.Validate(ErrClosePizzeriaCommandIsNotConstructed)
}

// Reason returns why the pizzeria is being closed.
func (c ClosePizzeriaCommand) Reason() string {
	return c.reason
}
