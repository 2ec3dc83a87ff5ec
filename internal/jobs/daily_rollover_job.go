package jobs

import (
	"context"
	"log/slog"

	"lastmile/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DailyRolloverJob publishes the tomorrow queue into the today queue each
// morning before the delivery day starts.
type DailyRolloverJob struct {
	handler  commands.PublishQueuedOrdersCommandHandler
	cron     *cron.Cron
	schedule string
	guard    singleFlight
	logger   *slog.Logger
}

// NewDailyRolloverJob creates the rollover job with the given cron schedule,
// e.g. "30 7 * * *" for 07:30 every day.
func NewDailyRolloverJob(
	handler commands.PublishQueuedOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *DailyRolloverJob {
	return &DailyRolloverJob{
		handler:  handler,
		cron:     cron.New(),
		schedule: schedule,
		guard:    singleFlight{name: "daily_rollover"},
		logger:   logger.With("component", "daily_rollover_job"),
	}
}

// Start schedules the rollover.
func (j *DailyRolloverJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.guard.Do(j.run)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Daily rollover job started",
		"schedule", j.schedule)
	return nil
}

// Stop stops the rollover job.
func (j *DailyRolloverJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Daily rollover job stopped")
}

func (j *DailyRolloverJob) run() {
	ctx := context.Background()
	cmd := commands.NewPublishQueuedOrdersCommand()

	published, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Daily rollover failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Daily rollover finished", "published", published)
}
