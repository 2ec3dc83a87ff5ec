package jobs

import (
	"fmt"
	"log/slog"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/ports"
)

// Schedules holds the cron expressions of all background jobs.
type Schedules struct {
	DailyRollover string
	SLACheck      string
	MorningReport string
	DayReport     string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dailyRolloverJob *DailyRolloverJob
	slaCheckJob      *SLACheckJob
	morningReportJob *ReportJob
	dayReportJob     *ReportJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command and query handlers as dependencies to wire up the job execution.
func NewJobManager(
	rolloverHandler commands.PublishQueuedOrdersCommandHandler,
	escalateHandler commands.EscalateOverdueOrdersCommandHandler,
	reportHandler queries.GetDailyReportQueryHandler,
	uowFactory commands.UoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dailyRolloverJob: NewDailyRolloverJob(rolloverHandler, schedules.DailyRollover, logger),
		slaCheckJob:      NewSLACheckJob(escalateHandler, schedules.SLACheck, logger),
		morningReportJob: NewReportJob(ports.ReportMorning, reportHandler,
			uowFactory, notifier, clock, schedules.MorningReport, logger),
		dayReportJob: NewReportJob(ports.ReportDaySummary, reportHandler,
			uowFactory, notifier, clock, schedules.DayReport, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start; already started jobs are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.dailyRolloverJob.Start(); err != nil {
		return fmt.Errorf("failed to start daily rollover job: %w", err)
	}

	if err := jm.slaCheckJob.Start(); err != nil {
		jm.dailyRolloverJob.Stop()
		return fmt.Errorf("failed to start SLA check job: %w", err)
	}

	if err := jm.morningReportJob.Start(); err != nil {
		jm.dailyRolloverJob.Stop()
		jm.slaCheckJob.Stop()
		return fmt.Errorf("failed to start morning report job: %w", err)
	}

	if err := jm.dayReportJob.Start(); err != nil {
		jm.dailyRolloverJob.Stop()
		jm.slaCheckJob.Stop()
		jm.morningReportJob.Stop()
		return fmt.Errorf("failed to start day report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dayReportJob.Stop()
	jm.morningReportJob.Stop()
	jm.slaCheckJob.Stop()
	jm.dailyRolloverJob.Stop()
}
