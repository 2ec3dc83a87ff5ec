// Package kafkanotifier publishes workflow events to Kafka topics consumed
// by the chat gateway. The gateway owns the actual chat formatting and
// delivery; this adapter only emits structured JSON events.
package kafkanotifier

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/account"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/region"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Config holds the broker list and the three destination topics.
type Config struct {
	Brokers          []string
	OrderCardsTopic  string
	EscalationsTopic string
	ReportsTopic     string
}

// ParseBrokers splits a comma-separated broker list, dropping empty entries.
func ParseBrokers(csv string) []string {
	brokers := make([]string, 0)
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// messageWriter is the slice of kafka.Writer the notifier depends on.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaNotifier implements ports.Notifier on top of a single topic-less
// writer; each message carries its destination topic.
type KafkaNotifier struct {
	writer messageWriter
	config Config
}

// New creates a notifier publishing to the given brokers and topics.
func New(config Config) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(config.Brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		config: config,
	}
}

// Close flushes and closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	if closer, ok := n.writer.(*kafka.Writer); ok {
		return closer.Close()
	}
	return nil
}

type orderCardEvent struct {
	ChatID         string `json:"chat_id"`
	TopicID        string `json:"topic_id"`
	OrderID        string `json:"order_id"`
	HumanID        string `json:"human_id"`
	Status         string `json:"status"`
	CustomerName   string `json:"customer_name"`
	CustomerPhone  string `json:"customer_phone"`
	Address        string `json:"address"`
	Landmark       string `json:"landmark,omitempty"`
	DeliveryDate   string `json:"delivery_date"`
	TimeWindowFrom string `json:"time_window_from,omitempty"`
	TimeWindowTo   string `json:"time_window_to,omitempty"`
	TotalAmount    int64  `json:"total_amount"`
	Comment        string `json:"comment,omitempty"`
}

// SendOrderCard publishes an order card event addressed to the region chat.
// Regions without a chat destination are skipped silently.
func (n *KafkaNotifier) SendOrderCard(
	ctx context.Context,
	aggregate *order.Order,
	dst *region.Region,
) error {
	if dst.ChatID() == "" {
		return nil
	}

	event := orderCardEvent{
		ChatID:         dst.ChatID(),
		TopicID:        dst.TodayTopicID(),
		OrderID:        aggregate.ID().String(),
		HumanID:        aggregate.HumanID(),
		Status:         aggregate.Status().String(),
		CustomerName:   aggregate.Customer().Name(),
		CustomerPhone:  aggregate.Customer().Phone(),
		Address:        aggregate.Customer().Address(),
		Landmark:       aggregate.Customer().Landmark(),
		DeliveryDate:   aggregate.DeliveryDate().String(),
		TimeWindowFrom: aggregate.TimeWindowFrom(),
		TimeWindowTo:   aggregate.TimeWindowTo(),
		TotalAmount:    aggregate.TotalAmount(),
		Comment:        aggregate.Comment(),
	}
	if aggregate.Status() == order.QueuedTomorrow {
		event.TopicID = dst.TomorrowTopicID()
	}

	return n.publish(ctx, n.config.OrderCardsTopic, aggregate.RegionID().String(), event)
}

type escalationEvent struct {
	Kind           string   `json:"kind"`
	OrderID        string   `json:"order_id"`
	HumanID        string   `json:"human_id"`
	Status         string   `json:"status"`
	OverdueMinutes int      `json:"overdue_minutes"`
	RecipientChats []string `json:"recipient_chats"`
}

// SendEscalation publishes an overdue-order alert for the given recipients.
func (n *KafkaNotifier) SendEscalation(
	ctx context.Context,
	escalation ports.Escalation,
	recipients []*account.User,
) error {
	event := escalationEvent{
		Kind:           string(escalation.Kind),
		OrderID:        escalation.OrderID.String(),
		HumanID:        escalation.HumanID,
		Status:         escalation.Status.String(),
		OverdueMinutes: int(escalation.OverdueFor / time.Minute),
		RecipientChats: chatIDs(recipients),
	}

	return n.publish(ctx, n.config.EscalationsTopic, escalation.OrderID.String(), event)
}

type reportEvent struct {
	Kind           string         `json:"kind"`
	Date           string         `json:"date"`
	TotalOrders    int            `json:"total_orders"`
	CountByStatus  map[string]int `json:"count_by_status"`
	TotalAmount    int64          `json:"total_amount"`
	DeliveredTotal int64          `json:"delivered_amount"`
	ConversionRate float64        `json:"conversion_rate"`
	RecipientChats []string       `json:"recipient_chats"`
}

// SendReport publishes a daily report for the given recipients.
func (n *KafkaNotifier) SendReport(
	ctx context.Context,
	kind ports.ReportKind,
	report services.DailyReport,
	recipients []*account.User,
) error {
	countByStatus := make(map[string]int, len(report.CountByStatus))
	for status, count := range report.CountByStatus {
		countByStatus[status.String()] = count
	}

	event := reportEvent{
		Kind:           string(kind),
		Date:           report.Date.String(),
		TotalOrders:    report.TotalOrders,
		CountByStatus:  countByStatus,
		TotalAmount:    report.TotalAmount,
		DeliveredTotal: report.DeliveredAmount,
		ConversionRate: report.ConversionRate,
		RecipientChats: chatIDs(recipients),
	}

	return n.publish(ctx, n.config.ReportsTopic, report.Date.String(), event)
}

func (n *KafkaNotifier) publish(ctx context.Context, topic string, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return n.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	})
}

func chatIDs(recipients []*account.User) []string {
	ids := make([]string, 0, len(recipients))
	for _, user := range recipients {
		ids = append(ids, user.ChatID())
	}
	return ids
}
