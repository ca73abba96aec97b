package db

import (
	"context"
	"shop/entities"
	"shop/message"
	"shop/message/outbox"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var initOutboxOnce sync.Once

func getOrderRepo(t *testing.T) OrderRepository {
	t.Helper()

	conn := getDb(t)

	// the outbox publisher needs the watermill-sql tables in place
	initOutboxOnce.Do(func() {
		outbox.SubscribeForPGMessages(conn.Conn, watermill.NopLogger{})
	})

	return NewOrderRepository(conn, message.NewTopology())
}

func newPendingOrder() entities.Order {
	return entities.Order{
		OrderID:    uuid.New(),
		CustomerID: "customer-1",
		Status:     entities.OrderStatusPending,
		Message:    "Order received. Inventory check in progress.",
		Lines: []entities.OrderLine{
			{ProductID: uuid.New(), Quantity: 2},
		},
	}
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	orderRepo := getOrderRepo(t)
	ctx := context.Background()

	order := newPendingOrder()
	err := orderRepo.Create(ctx, order, shortuuid.New())
	require.NoError(t, err)

	stored, err := orderRepo.ByID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPending, stored.Status)
	assert.Equal(t, order.CustomerID, stored.CustomerID)
	assert.Equal(t, order.Lines, stored.Lines)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestOrderRepository_Create_duplicate(t *testing.T) {
	orderRepo := getOrderRepo(t)
	ctx := context.Background()

	order := newPendingOrder()
	require.NoError(t, orderRepo.Create(ctx, order, shortuuid.New()))

	err := orderRepo.Create(ctx, order, shortuuid.New())
	assert.ErrorIs(t, err, ErrOrderAlreadyExists)
}

func TestOrderRepository_Confirm_isIdempotent(t *testing.T) {
	orderRepo := getOrderRepo(t)
	ctx := context.Background()

	order := newPendingOrder()
	require.NoError(t, orderRepo.Create(ctx, order, shortuuid.New()))

	applied, err := orderRepo.Confirm(ctx, order.OrderID)
	require.NoError(t, err)
	assert.True(t, applied)

	// duplicate delivery must be a no-op
	applied, err = orderRepo.Confirm(ctx, order.OrderID)
	require.NoError(t, err)
	assert.False(t, applied)

	stored, err := orderRepo.ByID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusConfirmed, stored.Status)
}

func TestOrderRepository_Cancel_recordsReason(t *testing.T) {
	orderRepo := getOrderRepo(t)
	ctx := context.Background()

	order := newPendingOrder()
	require.NoError(t, orderRepo.Create(ctx, order, shortuuid.New()))

	applied, err := orderRepo.Cancel(ctx, order.OrderID, "Insufficient stock for product "+order.Lines[0].ProductID.String())
	require.NoError(t, err)
	assert.True(t, applied)

	stored, err := orderRepo.ByID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusCancelled, stored.Status)
	assert.Contains(t, stored.Reason, "Insufficient stock")
}

func TestOrderRepository_terminalStatesDoNotFlip(t *testing.T) {
	orderRepo := getOrderRepo(t)
	ctx := context.Background()

	order := newPendingOrder()
	require.NoError(t, orderRepo.Create(ctx, order, shortuuid.New()))

	applied, err := orderRepo.Confirm(ctx, order.OrderID)
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = orderRepo.Cancel(ctx, order.OrderID, "too late")
	require.NoError(t, err)
	assert.False(t, applied)

	stored, err := orderRepo.ByID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusConfirmed, stored.Status)
	assert.Empty(t, stored.Reason)
}

func TestOrderRepository_unknownOrder(t *testing.T) {
	orderRepo := getOrderRepo(t)
	ctx := context.Background()

	_, err := orderRepo.ByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = orderRepo.Confirm(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = orderRepo.Cancel(ctx, uuid.New(), "whatever")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
