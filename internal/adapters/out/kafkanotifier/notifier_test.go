package kafkanotifier

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"lastmile/internal/core/domain/model/account"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/region"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingWriter struct {
	messages []kafka.Message
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

var testConfig = Config{
	OrderCardsTopic:  "lastmile.order-cards",
	EscalationsTopic: "lastmile.escalations",
	ReportsTopic:     "lastmile.reports",
}

func newCapturingNotifier() (*KafkaNotifier, *capturingWriter) {
	writer := &capturingWriter{}
	return &KafkaNotifier{writer: writer, config: testConfig}, writer
}

func newCardOrder(t *testing.T, deliveryDate kernel.Date, now time.Time) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Гульнора", "+998901234567", "Чиланзар 5", "возле аптеки")
	require.NoError(t, err)
	item, err := order.NewItem("Термос", 2)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), "#2405101234", customer, []order.Item{item},
		250000, order.PaymentCash, deliveryDate, "10:00", "13:00",
		kernel.NewUUID(), kernel.NewUUID(), "позвонить заранее", now,
	)
	require.NoError(t, err)

	return aggregate
}

func TestSendOrderCard_PublishesToRegionChat(t *testing.T) {
	notifier, writer := newCapturingNotifier()
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	aggregate := newCardOrder(t, kernel.DateOf(now), now)

	dst, err := region.NewRegion(kernel.NewUUID(), "Ташкент", "chat-100", "41", "42")
	require.NoError(t, err)

	require.NoError(t, notifier.SendOrderCard(context.Background(), aggregate, dst))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "lastmile.order-cards", msg.Topic)
	assert.Equal(t, aggregate.RegionID().String(), string(msg.Key))

	var event orderCardEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "chat-100", event.ChatID)
	assert.Equal(t, "41", event.TopicID)
	assert.Equal(t, "#2405101234", event.HumanID)
	assert.Equal(t, "PUBLISHED_TODAY", event.Status)
	assert.Equal(t, "+998901234567", event.CustomerPhone)
	assert.Equal(t, int64(250000), event.TotalAmount)
}

func TestSendOrderCard_QueuedOrderGoesToTomorrowTopic(t *testing.T) {
	notifier, writer := newCapturingNotifier()
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	aggregate := newCardOrder(t, kernel.DateOf(now).AddDays(1), now)

	dst, err := region.NewRegion(kernel.NewUUID(), "Ташкент", "chat-100", "41", "42")
	require.NoError(t, err)

	require.NoError(t, notifier.SendOrderCard(context.Background(), aggregate, dst))
	require.Len(t, writer.messages, 1)

	var event orderCardEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &event))
	assert.Equal(t, "42", event.TopicID)
	assert.Equal(t, "QUEUED_TOMORROW", event.Status)
}

func TestSendOrderCard_RegionWithoutChatIsSkipped(t *testing.T) {
	notifier, writer := newCapturingNotifier()
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	aggregate := newCardOrder(t, kernel.DateOf(now), now)

	dst, err := region.NewRegion(kernel.NewUUID(), "Склад", "", "", "")
	require.NoError(t, err)

	require.NoError(t, notifier.SendOrderCard(context.Background(), aggregate, dst))
	assert.Empty(t, writer.messages)
}

func TestSendEscalation_PublishesRecipientChats(t *testing.T) {
	notifier, writer := newCapturingNotifier()

	operator, err := account.NewUser(kernel.NewUUID(), "chat-7", "Дильноза", account.RoleOperator, nil)
	require.NoError(t, err)

	orderID := kernel.NewUUID()
	escalation := ports.Escalation{
		Kind:       ports.EscalationRetryCall,
		OrderID:    orderID,
		HumanID:    "#2405101234",
		Status:     order.NoAnswer,
		OverdueFor: 45 * time.Minute,
	}

	require.NoError(t, notifier.SendEscalation(
		context.Background(), escalation, []*account.User{operator},
	))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "lastmile.escalations", msg.Topic)
	assert.Equal(t, orderID.String(), string(msg.Key))

	var event escalationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "retry_call", event.Kind)
	assert.Equal(t, "NO_ANSWER", event.Status)
	assert.Equal(t, 45, event.OverdueMinutes)
	assert.Equal(t, []string{"chat-7"}, event.RecipientChats)
}

func TestSendReport_PublishesAggregates(t *testing.T) {
	notifier, writer := newCapturingNotifier()

	logist, err := account.NewUser(kernel.NewUUID(), "chat-9", "Бекзод", account.RoleLogist, nil)
	require.NoError(t, err)

	date, err := kernel.NewDate("2024-05-10")
	require.NoError(t, err)

	report := services.DailyReport{
		Date:        date,
		TotalOrders: 4,
		CountByStatus: map[order.Status]int{
			order.Delivered: 3,
			order.Declined:  1,
		},
		TotalAmount:     1000000,
		DeliveredAmount: 750000,
		ConversionRate:  75.0,
	}

	require.NoError(t, notifier.SendReport(
		context.Background(), ports.ReportDaySummary, report, []*account.User{logist},
	))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "lastmile.reports", msg.Topic)
	assert.Equal(t, "2024-05-10", string(msg.Key))

	var event reportEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "day_summary", event.Kind)
	assert.Equal(t, 4, event.TotalOrders)
	assert.Equal(t, 3, event.CountByStatus["DELIVERED"])
	assert.Equal(t, int64(750000), event.DeliveredTotal)
	assert.InDelta(t, 75.0, event.ConversionRate, 0.001)
	assert.Equal(t, []string{"chat-9"}, event.RecipientChats)
}

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, ParseBrokers("k1:9092, k2:9092"))
	assert.Empty(t, ParseBrokers(""))
}
