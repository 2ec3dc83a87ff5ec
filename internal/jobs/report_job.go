package jobs

import (
	"context"
	"log/slog"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/account"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ReportJob broadcasts a daily aggregate to logists and admins. Two
// instances run in production: the morning plan and the evening summary,
// both reporting on the current delivery date.
type ReportJob struct {
	kind          ports.ReportKind
	reportHandler queries.GetDailyReportQueryHandler
	uowFactory    commands.UoWFactory
	notifier      ports.Notifier
	clock         ports.Clock
	cron          *cron.Cron
	schedule      string
	guard         singleFlight
	logger        *slog.Logger
}

// NewReportJob creates a report broadcast job with the given cron schedule.
func NewReportJob(
	kind ports.ReportKind,
	reportHandler queries.GetDailyReportQueryHandler,
	uowFactory commands.UoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
	schedule string,
	logger *slog.Logger,
) *ReportJob {
	return &ReportJob{
		kind:          kind,
		reportHandler: reportHandler,
		uowFactory:    uowFactory,
		notifier:      notifier,
		clock:         clock,
		cron:          cron.New(),
		schedule:      schedule,
		guard:         singleFlight{name: "report_" + string(kind)},
		logger:        logger.With("component", "report_job", "kind", string(kind)),
	}
}

// Start schedules the broadcast.
func (j *ReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.guard.Do(j.run)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Report job started",
		"schedule", j.schedule)
	return nil
}

// Stop stops the broadcast job.
func (j *ReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Report job stopped")
}

func (j *ReportJob) run() {
	ctx := context.Background()
	date := kernel.DateOf(j.clock.Now())

	query, err := queries.NewGetDailyReportQuery(date)
	if err != nil {
		j.logger.ErrorContext(ctx, "Report query rejected", "error", err)
		return
	}

	report, err := j.reportHandler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Report aggregation failed", "error", err)
		return
	}

	recipients, err := j.collectRecipients(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Report recipients lookup failed", "error", err)
		return
	}
	if len(recipients) == 0 {
		j.logger.WarnContext(ctx, "No report recipients configured")
		return
	}

	if err := j.notifier.SendReport(ctx, j.kind, report, recipients); err != nil {
		j.logger.ErrorContext(ctx, "Report broadcast failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Report broadcast",
		"date", date.String(), "recipients", len(recipients))
}

// collectRecipients reads the users the report goes to in one read-only
// transaction.
func (j *ReportJob) collectRecipients(ctx context.Context) ([]*account.User, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	logists, err := uow.UserRepository().GetAllInRole(ctx, account.RoleLogist)
	if err != nil {
		return nil, err
	}

	admins, err := uow.UserRepository().GetAllInRole(ctx, account.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return append(logists, admins...), nil
}
