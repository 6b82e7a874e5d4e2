package commands

import (
	"errors"
	"strings"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrPizzaIsRequired = errs.NewValueIsRequiredError("pizza")
)

// SubmitOrderCommand is a request to bake and deliver one pizza.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand("margherita")
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//
//	handler := NewSubmitOrderCommandHandler(p)
//	id, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	pizza string

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command for the given pizza. Surrounding
// whitespace is dropped; an empty name is rejected.
func NewSubmitOrderCommand(pizza string) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPizza(pizza); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// Pizza returns the requested pizza.
func (c SubmitOrderCommand) Pizza() string {
	return c.pizza
}

func (c *SubmitOrderCommand) setPizza(pizza string) error {
	pizza = strings.TrimSpace(pizza)
	if pizza == "" {
		return ErrPizzaIsRequired
	}

	c.pizza = pizza
	return nil
}
