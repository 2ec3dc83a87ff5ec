package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers          string
	KafkaOrderCardsTopic  string
	KafkaEscalationsTopic string
	KafkaReportsTopic     string

	ScheduleDailyRollover string
	ScheduleSLACheck      string
	ScheduleMorningReport string
	ScheduleDayReport     string

	SLARetryAfter      time.Duration
	SLASupervisorAfter time.Duration
}
