package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPizzeria struct{ mock.Mock }

func (m *MockPizzeria) Submit(ctx context.Context, pizza string) (order.ID, error) {
	args := m.Called(ctx, pizza)
	return args.Get(0).(order.ID), args.Error(1)
}

func (m *MockPizzeria) Close() {
	m.Called()
}

func TestSubmitOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand("margherita")
	require.NoError(t, err)

	p := new(MockPizzeria)
	p.On("Submit", ctx, "margherita").Return(order.ID(3), nil).Once()

	h := commands.NewSubmitOrderCommandHandler(p)
	id, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ID(3), id)
	p.AssertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	p := new(MockPizzeria)
	h := commands.NewSubmitOrderCommandHandler(p)

	_, err := h.Handle(t.Context(), commands.SubmitOrderCommand{})

	require.ErrorIs(t, err, commands.ErrSubmitOrderCommandIsNotConstructed)
	p.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestSubmitOrderCommandHandler_Handle_SubmitError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand("margherita")
	require.NoError(t, err)
	rejected := errors.New("closed")

	p := new(MockPizzeria)
	p.On("Submit", ctx, "margherita").Return(order.ID(0), rejected).Once()

	h := commands.NewSubmitOrderCommandHandler(p)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, rejected)
	p.AssertExpectations(t)
}

func TestClosePizzeriaCommandHandler_Handle(t *testing.T) {
	p := new(MockPizzeria)
	p.On("Close").Return().Twice()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := commands.NewClosePizzeriaCommandHandler(p, logger)
	cmd := commands.NewClosePizzeriaCommand("test")

	require.NoError(t, h.Handle(t.Context(), cmd))
	require.NoError(t, h.Handle(t.Context(), cmd))
	p.AssertExpectations(t)
}

func TestClosePizzeriaCommandHandler_Handle_ValidationError(t *testing.T) {
	p := new(MockPizzeria)
	h := commands.NewClosePizzeriaCommandHandler(p, nil)

	err := h.Handle(t.Context(), commands.ClosePizzeriaCommand{})

	require.ErrorIs(t, err, commands.ErrClosePizzeriaCommandIsNotConstructed)
	p.AssertNotCalled(t, "Close")
}
