// Package jobs provides scheduled background tasks for the pizzeria.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ClientOrderJob - submits one random pizza from Menu per tick and stops once the pizzeria is closed
// 2. StatsReportJob - logs a snapshot of the pizzeria counters per tick
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(submitHandler, statsHandler, "@every 1s", "@every 10s", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are cron expressions with an optional seconds field, or
// descriptors such as "@every 2s". An empty schedule disables the job.
package jobs
