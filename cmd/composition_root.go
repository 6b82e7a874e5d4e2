package cmd

import (
	"log/slog"

	httpin "pizzeria/internal/adapters/in/http"
	"pizzeria/internal/adapters/out/memory"
	"pizzeria/internal/config"
	"pizzeria/internal/core/application/pizzeria"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/jobs"

	"github.com/labstack/echo/v4"
)

// CompositionRoot wires the pizzeria with its adapters and jobs.
type CompositionRoot struct {
	config   Config
	logger   *slog.Logger
	orders   *memory.OrderRepository
	pizzeria *pizzeria.Pizzeria
}

func NewCompositionRoot(cfg Config, params config.Params, logger *slog.Logger) (*CompositionRoot, error) {
	orders := memory.NewOrderRepository()

	p, err := pizzeria.New(params.Pizzeria(), orders, logger)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:   cfg,
		logger:   logger,
		orders:   orders,
		pizzeria: p,
	}, nil
}

func (c *CompositionRoot) Pizzeria() *pizzeria.Pizzeria {
	return c.pizzeria
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.pizzeria)
}

func (c *CompositionRoot) CreateClosePizzeriaCommandHandler() commands.ClosePizzeriaCommandHandler {
	return commands.NewClosePizzeriaCommandHandler(c.pizzeria, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetStatsQueryHandler() queries.GetStatsQueryHandler {
	return queries.NewGetStatsQueryHandler(c.pizzeria, c.orders)
}

func (c *CompositionRoot) CreateEcho() (*echo.Echo, error) {
	server := httpin.NewServer(
		c.CreateSubmitOrderCommandHandler(),
		c.CreateClosePizzeriaCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetStatsQueryHandler(),
		c.logger,
	)
	return httpin.NewEcho(server, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSubmitOrderCommandHandler(),
		c.CreateGetStatsQueryHandler(),
		c.config.ClientOrderSchedule,
		c.config.StatsReportSchedule,
		c.logger,
	)
}
