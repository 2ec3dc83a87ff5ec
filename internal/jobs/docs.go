// Package jobs provides scheduled background tasks for the workflow engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations of the order workflow.
//
// # Available Jobs
//
// 1. DailyRolloverJob - Publishes the tomorrow queue into the today queue each morning
// 2. SLACheckJob - Sweeps for orders stuck in a follow-up status and raises escalations
// 3. ReportJob (morning) - Broadcasts the plan for the day to logists and admins
// 4. ReportJob (day summary) - Broadcasts the evening summary of the delivery day
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(rolloverHandler, escalateHandler,
//		reportHandler, uowFactory, notifier, clock, schedules, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Every schedule is a standard five-field cron expression taken from
// configuration, e.g. "30 7 * * *" for the rollover and "*/10 * * * *" for
// the SLA sweep. Schedules are evaluated in the server's local time zone,
// which is expected to be the operational time zone of the delivery region.
//
// # Overlap Protection
//
// Each job drops a tick when its previous run has not finished yet; dropped
// ticks are counted in the lastmile_job_ticks_skipped_total metric.
package jobs
