package orders

import (
	"context"
	"errors"
	"testing"

	"shop/db"
	"shop/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder_assignsIDAndStartsPending(t *testing.T) {
	repo := NewOrderRepositoryMock()
	svc := NewService(repo)

	created, err := svc.CreateOrder(context.Background(), entities.Order{
		CustomerID: "customer-1",
		Lines: []entities.OrderLine{
			{ProductID: uuid.New(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.OrderID)
	assert.Equal(t, entities.OrderStatusPending, created.Status)
	assert.Equal(t, "Order received. Inventory check in progress.", created.Message)
}

func TestCreateOrder_keepsClientSuppliedID(t *testing.T) {
	repo := NewOrderRepositoryMock()
	svc := NewService(repo)

	orderID := uuid.New()

	created, err := svc.CreateOrder(context.Background(), entities.Order{
		OrderID:    orderID,
		CustomerID: "customer-1",
		Lines: []entities.OrderLine{
			{ProductID: uuid.New(), Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, orderID, created.OrderID)
}

func TestCreateOrder_duplicateID(t *testing.T) {
	repo := NewOrderRepositoryMock()
	svc := NewService(repo)

	order := entities.Order{
		OrderID:    uuid.New(),
		CustomerID: "customer-1",
		Lines: []entities.OrderLine{
			{ProductID: uuid.New(), Quantity: 1},
		},
	}

	_, err := svc.CreateOrder(context.Background(), order)
	require.NoError(t, err)

	_, err = svc.CreateOrder(context.Background(), order)
	assert.True(t, errors.Is(err, db.ErrOrderAlreadyExists))
}

func TestGetOrder_unknownOrder(t *testing.T) {
	repo := NewOrderRepositoryMock()
	svc := NewService(repo)

	_, err := svc.GetOrder(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, db.ErrOrderNotFound))
}
