package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// NewOrder is the body of POST /api/v1/orders.
type NewOrder struct {
	Pizza string `json:"pizza"`
}

// OrderCreated is returned for an accepted order.
type OrderCreated struct {
	ID uint64 `json:"id"`
}

// Transition is one entry of an order history.
type Transition struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// Order is the public view of an order.
type Order struct {
	ID          uint64       `json:"id"`
	Pizza       string       `json:"pizza"`
	Status      string       `json:"status"`
	BakedBy     string       `json:"baked_by,omitempty"`
	DeliveredBy string       `json:"delivered_by,omitempty"`
	Transitions []Transition `json:"transitions"`
}

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// CreateOrder handles POST /api/v1/orders.
	CreateOrder(ctx echo.Context) error
	// GetOrder handles GET /api/v1/orders/{id}.
	GetOrder(ctx echo.Context, id int64) error
	// GetStats handles GET /api/v1/stats.
	GetStats(ctx echo.Context) error
	// ClosePizzeria handles POST /api/v1/close.
	ClosePizzeria(ctx echo.Context) error
}

// ServerInterfaceWrapper turns echo contexts into typed ServerInterface calls.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var id int64

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	return w.Handler.GetOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) GetStats(ctx echo.Context) error {
	return w.Handler.GetStats(ctx)
}

func (w *ServerInterfaceWrapper) ClosePizzeria(ctx echo.Context) error {
	return w.Handler.ClosePizzeria(ctx)
}

// EchoRouter is the subset of echo used to register routes.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts si on router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/orders", wrapper.CreateOrder)
	router.GET("/api/v1/orders/:id", wrapper.GetOrder)
	router.GET("/api/v1/stats", wrapper.GetStats)
	router.POST("/api/v1/close", wrapper.ClosePizzeria)
}
