package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/region"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var createNow = time.Date(2024, 5, 10, 15, 12, 34, 0, time.UTC)

func newTestRegion(t *testing.T) *region.Region {
	t.Helper()
	dst, err := region.NewRegion(kernel.NewUUID(), "Tashkent", "-100123", "11", "12")
	require.NoError(t, err)
	return dst
}

func TestCreateOrderCommandHandler_Handle_PublishesToday(t *testing.T) {
	ctx := context.Background()
	cmd := validCreateOrderCommand(t, "2024-05-10") // delivery today

	dst := newTestRegion(t)
	orderRepo := new(MockOrderRepository)
	regionRepo := new(MockRegionRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("RegionRepository").Return(regionRepo).Once()
	orderRepo.On("GetByPhoneAndDate", ctx, "+998901234567", cmd.DeliveryDate()).
		Return(nil, errs.NewObjectNotFoundError("order", nil)).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	regionRepo.On("Get", ctx, cmd.RegionID()).Return(dst, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("SendOrderCard", ctx, mock.AnythingOfType("*order.Order"), dst).
		Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, notifier, fixedClock{now: createNow})
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.PublishedToday, created.Status())
	assert.Equal(t, "#2405101234", created.HumanID())
	orderRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_QueuesTomorrow(t *testing.T) {
	ctx := context.Background()
	cmd := validCreateOrderCommand(t, "2024-05-11") // delivery tomorrow

	dst := newTestRegion(t)
	orderRepo := new(MockOrderRepository)
	regionRepo := new(MockRegionRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("RegionRepository").Return(regionRepo).Once()
	orderRepo.On("GetByPhoneAndDate", ctx, "+998901234567", cmd.DeliveryDate()).
		Return(nil, errs.NewObjectNotFoundError("order", nil)).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	regionRepo.On("Get", ctx, cmd.RegionID()).Return(dst, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	// queued orders get a card too; the notifier routes it to the
	// region's tomorrow queue topic
	notifier := new(MockNotifier)
	notifier.On("SendOrderCard", ctx, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.QueuedTomorrow
	}), dst).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, notifier, fixedClock{now: createNow})
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.QueuedTomorrow, created.Status())
	notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_DuplicatePreCheck(t *testing.T) {
	ctx := context.Background()
	cmd := validCreateOrderCommand(t, "2024-05-10")

	existing := &order.Order{}
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetByPhoneAndDate", ctx, "+998901234567", cmd.DeliveryDate()).
		Return(existing, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, new(MockNotifier), fixedClock{now: createNow})
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDuplicateOrder)

	var dup *commands.DuplicateOrderError
	require.ErrorAs(t, err, &dup)
	assert.Same(t, existing, dup.Existing)
	assert.Equal(t, "+998901234567", dup.Phone)
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_DuplicateOnInsert(t *testing.T) {
	ctx := context.Background()
	cmd := validCreateOrderCommand(t, "2024-05-10")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetByPhoneAndDate", ctx, "+998901234567", cmd.DeliveryDate()).
		Return(nil, errs.NewObjectNotFoundError("order", nil)).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Return(ports.ErrOrderAlreadyExists).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, new(MockNotifier), fixedClock{now: createNow})
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDuplicateOrder)

	var dup *commands.DuplicateOrderError
	require.ErrorAs(t, err, &dup)
	assert.Nil(t, dup.Existing)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCreateOrderCommandHandler(
		new(MockUoWFactory), new(MockNotifier), fixedClock{now: createNow})

	_, err := h.Handle(context.Background(), commands.CreateOrderCommand{})
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := context.Background()
	cmd := validCreateOrderCommand(t, "2024-05-10")

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, new(MockNotifier), fixedClock{now: createNow})
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_NotificationFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	cmd := validCreateOrderCommand(t, "2024-05-10")

	orderRepo := new(MockOrderRepository)
	regionRepo := new(MockRegionRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("RegionRepository").Return(regionRepo).Once()
	orderRepo.On("GetByPhoneAndDate", ctx, "+998901234567", cmd.DeliveryDate()).
		Return(nil, errs.NewObjectNotFoundError("order", nil)).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	regionRepo.On("Get", ctx, cmd.RegionID()).Return(newTestRegion(t), nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("SendOrderCard", ctx, mock.Anything, mock.Anything).
		Return(errors.New("chat unavailable")).Once()

	h := commands.NewCreateOrderCommandHandler(factory, notifier, fixedClock{now: createNow})
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.NotNil(t, created)
}
