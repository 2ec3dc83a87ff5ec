package order_test

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/account"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T, deliveryDate string) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Алишер", "+998901234567", "ул. Навои 15", "")
	require.NoError(t, err)
	item, err := order.NewItem("Плед", 2)
	require.NoError(t, err)
	date, err := kernel.NewDate(deliveryDate)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		"#2405101234",
		customer,
		[]order.Item{item},
		250000,
		order.PaymentCash,
		date,
		"10:00",
		"13:00",
		kernel.NewUUID(),
		kernel.NewUUID(),
		"",
		testNow,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("delivery today is published immediately", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")
		assert.Equal(t, order.PublishedToday, o.Status())
	})

	t.Run("future delivery queues for tomorrow", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-11")
		assert.Equal(t, order.QueuedTomorrow, o.Status())
	})

	t.Run("seeds history with the creation event", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")

		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.Unknown, history[0].From())
		assert.Equal(t, o.Status(), history[0].To())
		assert.Equal(t, o.OperatorID(), history[0].ActorID())
		assert.Equal(t, "Заказ создан", history[0].Note())
		assert.Equal(t, testNow, history[0].At())
	})

	t.Run("starts unassigned at version 1", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")
		assert.Nil(t, o.Courier())
		assert.Equal(t, 1, o.Version())
	})

	t.Run("rejects customer without phone", func(t *testing.T) {
		_, err := order.NewCustomer("Алишер", "", "ул. Навои 15", "")
		require.Error(t, err)
	})

	t.Run("rejects negative total", func(t *testing.T) {
		customer, _ := order.NewCustomer("", "+998901234567", "", "")
		date, _ := kernel.NewDate("2024-05-10")
		_, err := order.NewOrder(
			kernel.NewUUID(), "#x", customer, nil, -1, order.PaymentCash,
			date, "", "", kernel.NewUUID(), kernel.NewUUID(), "", testNow,
		)
		require.Error(t, err)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("appends exactly one history event per transition", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")
		actor := kernel.NewUUID()

		err := o.ChangeStatus(actor, account.RoleOperator, order.Confirmed, order.ReasonNone, "", testNow)
		require.NoError(t, err)

		history := o.History()
		require.Len(t, history, 2)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, order.PublishedToday, history[1].From())
		assert.Equal(t, order.Confirmed, history[1].To())
		assert.Equal(t, actor, history[1].ActorID())
	})

	t.Run("last history event always matches current status", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")
		actor := kernel.NewUUID()

		for _, target := range []order.Status{
			order.Confirmed, order.OnTheWay, order.Delivered,
		} {
			require.NoError(t,
				o.ChangeStatus(actor, account.RoleAdmin, target, order.ReasonNone, "", testNow))
			history := o.History()
			assert.Equal(t, o.Status(), history[len(history)-1].To())
		}
		assert.Len(t, o.History(), 4)
	})

	t.Run("courier claim sets the courier", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")
		courier := kernel.NewUUID()

		err := o.ChangeStatus(courier, account.RoleCourier, order.Assigned, order.ReasonNone, "", testNow)
		require.NoError(t, err)

		require.NotNil(t, o.Courier())
		assert.True(t, o.Courier().IsEqual(courier))
		assert.True(t, o.IsOwnedBy(courier))
	})

	t.Run("operator assignment does not set a courier", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")

		err := o.ChangeStatus(kernel.NewUUID(), account.RoleOperator, order.Assigned, order.ReasonNone, "", testNow)
		require.NoError(t, err)
		assert.Nil(t, o.Courier())
	})

	t.Run("default note names the new status", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")

		err := o.ChangeStatus(kernel.NewUUID(), account.RoleOperator, order.NoAnswer, order.ReasonNoAnswer, "", testNow)
		require.NoError(t, err)

		history := o.History()
		assert.Equal(t, "Статус изменен на NO_ANSWER", history[1].Note())
		assert.Empty(t, o.Comment(), "default note must not overwrite the comment")
	})

	t.Run("supplied note becomes the comment", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")

		err := o.ChangeStatus(kernel.NewUUID(), account.RoleOperator, order.Rescheduled,
			order.ReasonRescheduled, "Позвонить после 18:00", testNow)
		require.NoError(t, err)

		assert.Equal(t, "Позвонить после 18:00", o.Comment())
		history := o.History()
		assert.Equal(t, "Позвонить после 18:00", history[1].Note())
		assert.Equal(t, order.ReasonRescheduled, history[1].ReasonCode())
		assert.Equal(t, order.ReasonRescheduled, o.ReasonCode())
	})

	t.Run("bumps the version on every transition", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")
		require.Equal(t, 1, o.Version())

		require.NoError(t,
			o.ChangeStatus(kernel.NewUUID(), account.RoleOperator, order.Confirmed, order.ReasonNone, "", testNow))
		assert.Equal(t, 2, o.Version())
	})

	t.Run("rejects invalid targets", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")

		err := o.ChangeStatus(kernel.NewUUID(), account.RoleOperator, order.Unknown, order.ReasonNone, "", testNow)
		require.Error(t, err)
		assert.Len(t, o.History(), 1, "failed transition must not touch history")
	})

	t.Run("accepts transitions out of practically terminal states", func(t *testing.T) {
		// The transition graph is intentionally unrestricted; only
		// authorization gates transitions.
		o := newTestOrder(t, "2024-05-10")
		actor := kernel.NewUUID()

		require.NoError(t,
			o.ChangeStatus(actor, account.RoleAdmin, order.Delivered, order.ReasonNone, "", testNow))
		require.NoError(t,
			o.ChangeStatus(actor, account.RoleAdmin, order.QueuedTomorrow, order.ReasonNone, "", testNow))
		assert.Equal(t, order.QueuedTomorrow, o.Status())
	})
}

func TestOrder_LastEventTo(t *testing.T) {
	o := newTestOrder(t, "2024-05-10")
	actor := kernel.NewUUID()

	first := testNow
	second := testNow.Add(40 * time.Minute)
	require.NoError(t, o.ChangeStatus(actor, account.RoleCourier, order.NoAnswer, order.ReasonNoAnswer, "", first))
	require.NoError(t, o.ChangeStatus(actor, account.RoleOperator, order.Confirmed, order.ReasonNone, "", testNow.Add(20*time.Minute)))
	require.NoError(t, o.ChangeStatus(actor, account.RoleCourier, order.NoAnswer, order.ReasonNoAnswer, "", second))

	event, ok := o.LastEventTo(order.NoAnswer)
	require.True(t, ok)
	assert.Equal(t, second, event.At(), "must find the most recent matching event")

	_, ok = o.LastEventTo(order.Delivered)
	assert.False(t, ok)
}

func TestOrder_RollOverToToday(t *testing.T) {
	t.Run("publishes a queued order with the system note", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-11")
		require.Equal(t, order.QueuedTomorrow, o.Status())
		versionBefore := o.Version()

		rolledAt := testNow.Add(19*time.Hour + 30*time.Minute) // next morning
		require.NoError(t, o.RollOverToToday(rolledAt))

		assert.Equal(t, order.PublishedToday, o.Status())
		assert.Equal(t, versionBefore+1, o.Version())

		history := o.History()
		last := history[len(history)-1]
		assert.Equal(t, "Автоматический перекат на сегодня", last.Note())
		assert.Equal(t, order.QueuedTomorrow, last.From())
		assert.Equal(t, order.PublishedToday, last.To())
		assert.True(t, last.ActorID().IsEqual(account.SystemActorID()))
		assert.Equal(t, rolledAt, last.At())
	})

	t.Run("leaves the order comment untouched", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-11")
		actor := kernel.NewUUID()
		require.NoError(t, o.ChangeStatus(
			actor, account.RoleOperator, order.QueuedTomorrow, order.ReasonNone, "позвонить заранее", testNow))

		require.NoError(t, o.RollOverToToday(testNow.Add(time.Hour)))
		assert.Equal(t, "позвонить заранее", o.Comment())
	})

	t.Run("rejects orders not in the tomorrow queue", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")
		require.Equal(t, order.PublishedToday, o.Status())

		err := o.RollOverToToday(testNow)
		require.ErrorIs(t, err, order.ErrOrderIsNotQueued)
		assert.Len(t, o.History(), 1)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round trips a mutated order", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")
		courier := kernel.NewUUID()
		require.NoError(t,
			o.ChangeStatus(courier, account.RoleCourier, order.Assigned, order.ReasonNone, "", testNow))

		restored, err := order.RestoreOrder(
			o.ID(), o.HumanID(), o.Status(), o.Customer(), o.Items(),
			o.TotalAmount(), o.PaymentType(), o.DeliveryDate(),
			o.TimeWindowFrom(), o.TimeWindowTo(), o.RegionID(), o.OperatorID(),
			o.Courier(), o.ReasonCode(), o.Comment(), o.History(), o.Version(),
		)
		require.NoError(t, err)
		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, o.Status(), restored.Status())
		assert.Equal(t, o.Version(), restored.Version())
		assert.True(t, restored.IsOwnedBy(courier))
	})

	t.Run("rejects empty history", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")
		_, err := order.RestoreOrder(
			o.ID(), o.HumanID(), o.Status(), o.Customer(), o.Items(),
			o.TotalAmount(), o.PaymentType(), o.DeliveryDate(),
			o.TimeWindowFrom(), o.TimeWindowTo(), o.RegionID(), o.OperatorID(),
			nil, order.ReasonNone, "", nil, 1,
		)
		require.ErrorIs(t, err, order.ErrHistoryIsEmpty)
	})

	t.Run("rejects history out of sync with status", func(t *testing.T) {
		o := newTestOrder(t, "2024-05-10")
		_, err := order.RestoreOrder(
			o.ID(), o.HumanID(), order.Delivered, o.Customer(), o.Items(),
			o.TotalAmount(), o.PaymentType(), o.DeliveryDate(),
			o.TimeWindowFrom(), o.TimeWindowTo(), o.RegionID(), o.OperatorID(),
			nil, order.ReasonNone, "", o.History(), 1,
		)
		require.ErrorIs(t, err, order.ErrHistoryOutOfSync)
	})
}

func TestOrder_ZeroValueIsInvalid(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
}
