package inventory

import (
	"context"
	"errors"
	"fmt"
	"shop/entities"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveOrder_allLinesReserved(t *testing.T) {
	productID := uuid.New()
	ledger := NewLedgerMock(map[uuid.UUID]int{productID: 5})
	svc := NewService(ledger)

	decision, err := svc.ReserveOrder(context.Background(), uuid.New(), []entities.OrderLine{
		{ProductID: productID, Quantity: 3},
	})
	require.NoError(t, err)

	assert.True(t, decision.Reserved)
	assert.Equal(t, 2, ledger.Available[productID])
	assert.Equal(t, 3, ledger.Reserved[productID])
}

func TestReserveOrder_insufficientStock(t *testing.T) {
	productID := uuid.New()
	ledger := NewLedgerMock(map[uuid.UUID]int{productID: 2})
	svc := NewService(ledger)

	decision, err := svc.ReserveOrder(context.Background(), uuid.New(), []entities.OrderLine{
		{ProductID: productID, Quantity: 3},
	})
	require.NoError(t, err)

	assert.False(t, decision.Reserved)
	assert.Equal(t, productID, decision.ProductID)
	assert.Equal(t, fmt.Sprintf("Insufficient stock for product %s", productID), decision.Reason)

	// nothing moved
	assert.Equal(t, 2, ledger.Available[productID])
	assert.Equal(t, 0, ledger.Reserved[productID])
}

func TestReserveOrder_productNotFound(t *testing.T) {
	ledger := NewLedgerMock(map[uuid.UUID]int{})
	svc := NewService(ledger)

	productID := uuid.New()
	decision, err := svc.ReserveOrder(context.Background(), uuid.New(), []entities.OrderLine{
		{ProductID: productID, Quantity: 1},
	})
	require.NoError(t, err)

	assert.False(t, decision.Reserved)
	assert.Equal(t, fmt.Sprintf("Product not found: %s", productID), decision.Reason)
}

func TestReserveOrder_earlierLinesStayReserved(t *testing.T) {
	productP := uuid.New()
	productQ := uuid.New()
	ledger := NewLedgerMock(map[uuid.UUID]int{
		productP: 5,
		productQ: 1,
	})
	svc := NewService(ledger)

	decision, err := svc.ReserveOrder(context.Background(), uuid.New(), []entities.OrderLine{
		{ProductID: productP, Quantity: 1},
		{ProductID: productQ, Quantity: 100},
	})
	require.NoError(t, err)

	assert.False(t, decision.Reserved)
	assert.Equal(t, productQ, decision.ProductID)

	// the first line is not rolled back when the second one fails
	assert.Equal(t, 4, ledger.Available[productP])
	assert.Equal(t, 1, ledger.Reserved[productP])
	assert.Equal(t, 1, ledger.Available[productQ])
	assert.Equal(t, 0, ledger.Reserved[productQ])
}

type failingLedger struct{}

func (failingLedger) Reserve(context.Context, uuid.UUID, int) error {
	return errors.New("storage unavailable")
}

func TestReserveOrder_infrastructureFailure(t *testing.T) {
	svc := NewService(failingLedger{})

	_, err := svc.ReserveOrder(context.Background(), uuid.New(), []entities.OrderLine{
		{ProductID: uuid.New(), Quantity: 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage unavailable")
}
