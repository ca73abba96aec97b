package inventory

import (
	"context"
	"shop/db"
	"sync"

	"github.com/google/uuid"
)

type LedgerMock struct {
	lock sync.Mutex

	Available map[uuid.UUID]int
	Reserved  map[uuid.UUID]int
}

func NewLedgerMock(available map[uuid.UUID]int) *LedgerMock {
	return &LedgerMock{
		Available: available,
		Reserved:  map[uuid.UUID]int{},
	}
}

func (m *LedgerMock) Reserve(ctx context.Context, productID uuid.UUID, quantity int) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	available, ok := m.Available[productID]
	if !ok {
		return db.ErrProductNotFound
	}
	if available < quantity {
		return db.ErrInsufficientStock
	}

	m.Available[productID] = available - quantity
	m.Reserved[productID] += quantity
	return nil
}
