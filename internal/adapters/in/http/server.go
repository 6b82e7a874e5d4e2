package http

import (
	"errors"
	"log/slog"
	"net/http"

	"pizzeria/internal/core/application/pizzeria"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var _ ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitOrderHandler   commands.SubmitOrderCommandHandler
	closePizzeriaHandler commands.ClosePizzeriaCommandHandler

	// Query handlers
	getOrderHandler queries.GetOrderQueryHandler
	getStatsHandler queries.GetStatsQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	closePizzeriaHandler commands.ClosePizzeriaCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getStatsHandler queries.GetStatsQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		submitOrderHandler:   submitOrderHandler,
		closePizzeriaHandler: closePizzeriaHandler,
		getOrderHandler:      getOrderHandler,
		getStatsHandler:      getStatsHandler,
		logger:               logger.With("component", "http"),
	}
}

// CreateOrder handles POST /api/v1/orders - submits a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSubmitOrderCommand(newOrder.Pizza)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	id, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusCreated, OrderCreated{ID: uint64(id)})
	case errors.Is(err, pizzeria.ErrRejected):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Pizzeria is closed",
		})
	case isValidationError(err):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "submit order failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to submit order",
		})
	}
}

// GetOrder handles GET /api/v1/orders/{id} - returns one order with its history.
func (s *Server) GetOrder(ctx echo.Context, id int64) error {
	if id <= 0 {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderQuery(order.ID(id))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "get order failed", "error", err, "order_id", id)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	transitions := make([]Transition, len(resp.Transitions))
	for i, tr := range resp.Transitions {
		transitions[i] = Transition{Status: tr.Status, At: tr.At}
	}

	return ctx.JSON(http.StatusOK, Order{
		ID:          uint64(resp.ID),
		Pizza:       resp.Pizza,
		Status:      resp.Status,
		BakedBy:     resp.BakedBy,
		DeliveredBy: resp.DeliveredBy,
		Transitions: transitions,
	})
}

// GetStats handles GET /api/v1/stats - returns the pizzeria counters.
func (s *Server) GetStats(ctx echo.Context) error {
	stats, err := s.getStatsHandler.Handle(ctx.Request().Context(), queries.NewGetStatsQuery())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve stats",
		})
	}

	return ctx.JSON(http.StatusOK, stats)
}

// ClosePizzeria handles POST /api/v1/close - stops order intake.
func (s *Server) ClosePizzeria(ctx echo.Context) error {
	cmd := commands.NewClosePizzeriaCommand("http")
	if err := s.closePizzeriaHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to close pizzeria",
		})
	}

	return ctx.NoContent(http.StatusAccepted)
}

func isValidationError(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}
