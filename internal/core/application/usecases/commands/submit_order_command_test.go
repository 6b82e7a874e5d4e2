package commands_test

import (
	"testing"

	"pizzeria/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmitOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewSubmitOrderCommand("  margherita ")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "margherita", cmd.Pizza())
}

func TestNewSubmitOrderCommand_EmptyPizza(t *testing.T) {
	for _, pizza := range []string{"", "   "} {
		_, err := commands.NewSubmitOrderCommand(pizza)
		require.ErrorIs(t, err, commands.ErrPizzaIsRequired)
	}
}

func TestSubmitOrderCommand_ZeroValue(t *testing.T) {
	var cmd commands.SubmitOrderCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrSubmitOrderCommandIsNotConstructed)
}

func TestNewClosePizzeriaCommand(t *testing.T) {
	cmd := commands.NewClosePizzeriaCommand("stdin")
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "stdin", cmd.Reason())

	var zero commands.ClosePizzeriaCommand
	assert.ErrorIs(t, zero.Validate(), commands.ErrClosePizzeriaCommandIsNotConstructed)
}
