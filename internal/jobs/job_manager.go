package jobs

import (
	"fmt"
	"log/slog"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
)

// job is a scheduled background task.
type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []job
	names   []string
	started []job
}

// NewJobManager creates a job manager. A job whose schedule is empty is not created.
func NewJobManager(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	getStatsHandler queries.GetStatsQueryHandler,
	clientOrderSchedule string,
	statsReportSchedule string,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}

	if statsReportSchedule != "" {
		jm.add("stats report", NewStatsReportJob(getStatsHandler, statsReportSchedule, logger))
	}
	if clientOrderSchedule != "" {
		jm.add("client order", NewClientOrderJob(submitOrderHandler, clientOrderSchedule, logger))
	}

	return jm
}

func (jm *JobManager) add(name string, j job) {
	jm.jobs = append(jm.jobs, j)
	jm.names = append(jm.names, name)
}

// Len returns the number of configured jobs.
func (jm *JobManager) Len() int {
	return len(jm.jobs)
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start; jobs already started are stopped.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", jm.names[i], err)
		}
		jm.started = append(jm.started, j)
	}

	return nil
}

// StopAll stops all started jobs gracefully.
func (jm *JobManager) StopAll() {
	for _, j := range jm.started {
		j.Stop()
	}
	jm.started = nil
}
