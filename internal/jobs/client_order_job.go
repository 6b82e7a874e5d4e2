package jobs

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"

	"pizzeria/internal/core/application/pizzeria"
	"pizzeria/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// Menu is the list of pizzas the client generator orders from.
var Menu = []string{
	"margherita",
	"marinara",
	"quattro formaggi",
	"quattro stagioni",
	"diavola",
	"capricciosa",
	"funghi",
	"napoletana",
}

// ClientOrderJob simulates a customer submitting one random pizza per tick.
// It unschedules itself once the pizzeria rejects orders.
type ClientOrderJob struct {
	handler  commands.SubmitOrderCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	entryID cron.EntryID
	stopped bool
}

// NewClientOrderJob creates a client generator firing on the given cron schedule.
func NewClientOrderJob(handler commands.SubmitOrderCommandHandler, schedule string, logger *slog.Logger) *ClientOrderJob {
	return &ClientOrderJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "client_order_job"),
	}
}

// Start schedules the job.
func (j *ClientOrderJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	id, err := j.cron.AddJob(j.schedule, j)
	if err != nil {
		return err
	}
	j.entryID = id

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Client order job started", "schedule", j.schedule)
	return nil
}

// Run submits one order. It implements cron.Job.
func (j *ClientOrderJob) Run() {
	if j.Stopped() {
		return
	}

	ctx := context.Background()
	pizza := Menu[rand.IntN(len(Menu))] //nolint:gosec // not security sensitive

	cmd, err := commands.NewSubmitOrderCommand(pizza)
	if err != nil {
		j.logger.ErrorContext(ctx, "Client order job failed", "error", err)
		return
	}

	id, err := j.handler.Handle(ctx, cmd)
	switch {
	case errors.Is(err, pizzeria.ErrRejected):
		j.logger.InfoContext(ctx, "Pizzeria closed, client stops ordering")
		j.unschedule()
	case err != nil:
		j.logger.ErrorContext(ctx, "Client order job failed", "error", err)
	default:
		j.logger.DebugContext(ctx, "Client ordered", "order_id", id, "pizza", pizza)
	}
}

// Stopped reports whether the job gave up after a rejection.
func (j *ClientOrderJob) Stopped() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.stopped
}

// Stop stops the scheduler.
func (j *ClientOrderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Client order job stopped")
}

func (j *ClientOrderJob) unschedule() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.stopped {
		return
	}
	j.stopped = true
	if j.entryID != 0 {
		j.cron.Remove(j.entryID)
	}
}
