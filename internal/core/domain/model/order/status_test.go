package order_test

import (
	"testing"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := map[order.Status]string{
		order.Unknown:        "UNKNOWN",
		order.QueuedTomorrow: "QUEUED_TOMORROW",
		order.PublishedToday: "PUBLISHED_TODAY",
		order.Assigned:       "ASSIGNED",
		order.Confirmed:      "CONFIRMED",
		order.NoAnswer:       "NO_ANSWER",
		order.BadNumber:      "BAD_NUMBER",
		order.Fake:           "FAKE",
		order.Declined:       "DECLINED",
		order.Rescheduled:    "RESCHEDULED",
		order.OnTheWay:       "ON_THE_WAY",
		order.Delivered:      "DELIVERED",
		order.PartialReturn:  "PARTIAL_RETURN",
		order.FullReturn:     "FULL_RETURN",
	}

	for status, expected := range tests {
		assert.Equal(t, expected, status.String())
	}

	assert.Equal(t, "UNKNOWN", order.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, s := range []order.Status{
			order.QueuedTomorrow, order.PublishedToday, order.Assigned,
			order.Confirmed, order.NoAnswer, order.BadNumber, order.Fake,
			order.Declined, order.Rescheduled, order.OnTheWay,
			order.Delivered, order.PartialReturn, order.FullReturn,
		} {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("LOST_IN_TRANSIT")
		require.Error(t, err)

		_, err = order.StatusFromString("")
		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
	require.NoError(t, order.Delivered.Validate())
}

func TestStatus_RequiresAction(t *testing.T) {
	for _, s := range order.ActionableStatuses() {
		assert.True(t, s.RequiresAction(), s.String())
	}
	for _, s := range []order.Status{
		order.QueuedTomorrow, order.PublishedToday, order.Assigned,
		order.Confirmed, order.OnTheWay, order.Delivered,
		order.PartialReturn, order.FullReturn,
	} {
		assert.False(t, s.RequiresAction(), s.String())
	}
}

func TestInitialStatusFor(t *testing.T) {
	today, _ := kernel.NewDate("2024-05-10")
	tomorrow, _ := kernel.NewDate("2024-05-11")
	nextWeek, _ := kernel.NewDate("2024-05-17")

	assert.Equal(t, order.PublishedToday, order.InitialStatusFor(today, today))
	assert.Equal(t, order.QueuedTomorrow, order.InitialStatusFor(tomorrow, today))
	assert.Equal(t, order.QueuedTomorrow, order.InitialStatusFor(nextWeek, today))
}
