package cmd

import (
	"log/slog"

	httpin "lastmile/internal/adapters/in/http"
	"lastmile/internal/adapters/out/kafkanotifier"
	"lastmile/internal/adapters/out/postgres"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/ports"
	"lastmile/internal/jobs"
	"lastmile/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   *kafkanotifier.KafkaNotifier
	clock      clock.System
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	notifier := kafkanotifier.New(kafkanotifier.Config{
		Brokers:          kafkanotifier.ParseBrokers(config.KafkaBrokers),
		OrderCardsTopic:  config.KafkaOrderCardsTopic,
		EscalationsTopic: config.KafkaEscalationsTopic,
		ReportsTopic:     config.KafkaReportsTopic,
	})

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		clock:      clock.NewSystem(),
	}
}

// Close releases outbound resources.
func (c *CompositionRoot) Close() error {
	return c.notifier.Close()
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.createUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.createUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreatePublishQueuedOrdersCommandHandler() commands.PublishQueuedOrdersCommandHandler {
	return commands.NewPublishQueuedOrdersCommandHandler(c.createUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateEscalateOverdueOrdersCommandHandler() commands.EscalateOverdueOrdersCommandHandler {
	return commands.NewEscalateOverdueOrdersCommandHandler(
		c.createUoWFactory(), c.notifier, c.clock,
		c.config.SLARetryAfter, c.config.SLASupervisorAfter,
	)
}

func (c *CompositionRoot) CreateGetOrdersForUserQueryHandler() queries.GetOrdersForUserQueryHandler {
	return queries.NewGetOrdersForUserQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateGetDailyReportQueryHandler() queries.GetDailyReportQueryHandler {
	return queries.NewGetDailyReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateGetOrdersForUserQueryHandler(),
		c.CreateGetDailyReportQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePublishQueuedOrdersCommandHandler(),
		c.CreateEscalateOverdueOrdersCommandHandler(),
		c.CreateGetDailyReportQueryHandler(),
		c.createUoWFactory(),
		c.notifier,
		c.clock,
		jobs.Schedules{
			DailyRollover: c.config.ScheduleDailyRollover,
			SLACheck:      c.config.ScheduleSLACheck,
			MorningReport: c.config.ScheduleMorningReport,
			DayReport:     c.config.ScheduleDayReport,
		},
		logger,
	)
}

// Notifier exposes the outbound notifier port, mainly for smoke checks.
func (c *CompositionRoot) Notifier() ports.Notifier {
	return c.notifier
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
