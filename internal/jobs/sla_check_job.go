package jobs

import (
	"context"
	"log/slog"

	"lastmile/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SLACheckJob periodically sweeps the order book for orders stuck in a
// follow-up status past their threshold and raises escalations.
type SLACheckJob struct {
	handler  commands.EscalateOverdueOrdersCommandHandler
	cron     *cron.Cron
	schedule string
	guard    singleFlight
	logger   *slog.Logger
}

// NewSLACheckJob creates the sweep job with the given cron schedule,
// e.g. "*/10 * * * *" for every ten minutes.
func NewSLACheckJob(
	handler commands.EscalateOverdueOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *SLACheckJob {
	return &SLACheckJob{
		handler:  handler,
		cron:     cron.New(),
		schedule: schedule,
		guard:    singleFlight{name: "sla_check"},
		logger:   logger.With("component", "sla_check_job"),
	}
}

// Start schedules the sweep.
func (j *SLACheckJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.guard.Do(j.run)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "SLA check job started",
		"schedule", j.schedule)
	return nil
}

// Stop stops the sweep job.
func (j *SLACheckJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "SLA check job stopped")
}

func (j *SLACheckJob) run() {
	ctx := context.Background()
	cmd := commands.NewEscalateOverdueOrdersCommand()

	raised, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "SLA sweep failed", "error", err)
		return
	}

	if raised > 0 {
		j.logger.InfoContext(ctx, "SLA sweep raised escalations", "count", raised)
	}
}
