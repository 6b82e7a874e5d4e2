package jobs

import (
	"context"
	"log/slog"

	"pizzeria/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StatsReportJob logs the pizzeria counters on a schedule.
type StatsReportJob struct {
	handler  queries.GetStatsQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStatsReportJob creates a stats reporter firing on the given cron schedule.
func NewStatsReportJob(handler queries.GetStatsQueryHandler, schedule string, logger *slog.Logger) *StatsReportJob {
	return &StatsReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stats_report_job"),
	}
}

// Start schedules the job.
func (j *StatsReportJob) Start() error {
	if _, err := j.cron.AddJob(j.schedule, j); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stats report job started", "schedule", j.schedule)
	return nil
}

// Run logs one stats snapshot. It implements cron.Job.
func (j *StatsReportJob) Run() {
	ctx := context.Background()

	stats, err := j.handler.Handle(ctx, queries.NewGetStatsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Stats report job failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Pizzeria stats",
		"open", stats.Open,
		"submitted", stats.Submitted,
		"delivered", stats.Delivered,
		"queued", stats.Queued,
		"stored", stats.Stored,
		"storage_peak", stats.StoragePeak,
		"busy_bakers", stats.BusyBakers,
		"busy_couriers", stats.BusyCouriers,
		"baker_manager", stats.BakerManager,
		"courier_manager", stats.CourierManager,
		"in_flight", stats.InFlight,
		"by_status", stats.ByStatus,
	)
}

// Stop stops the scheduler.
func (j *StatsReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stats report job stopped")
}
