package orders

import (
	"context"
	"shop/db"
	"shop/entities"
	"sync"
	"time"

	"github.com/google/uuid"
)

type OrderRepositoryMock struct {
	lock sync.Mutex

	Orders map[uuid.UUID]entities.Order
}

func NewOrderRepositoryMock() *OrderRepositoryMock {
	return &OrderRepositoryMock{
		Orders: map[uuid.UUID]entities.Order{},
	}
}

func (m *OrderRepositoryMock) Create(ctx context.Context, order entities.Order, correlationID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.Orders[order.OrderID]; ok {
		return db.ErrOrderAlreadyExists
	}

	order.CreatedAt = time.Now().UTC()
	order.UpdatedAt = order.CreatedAt
	m.Orders[order.OrderID] = order
	return nil
}

func (m *OrderRepositoryMock) ByID(ctx context.Context, orderID uuid.UUID) (entities.Order, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	order, ok := m.Orders[orderID]
	if !ok {
		return entities.Order{}, db.ErrOrderNotFound
	}
	return order, nil
}

func (m *OrderRepositoryMock) Confirm(ctx context.Context, orderID uuid.UUID) (bool, error) {
	return m.transition(orderID, entities.OrderStatusConfirmed, "Order confirmed.", "")
}

func (m *OrderRepositoryMock) Cancel(ctx context.Context, orderID uuid.UUID, reason string) (bool, error) {
	return m.transition(orderID, entities.OrderStatusCancelled, "Order cancelled.", reason)
}

func (m *OrderRepositoryMock) transition(orderID uuid.UUID, status entities.OrderStatus, message string, reason string) (bool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	order, ok := m.Orders[orderID]
	if !ok {
		return false, db.ErrOrderNotFound
	}
	if order.Status.IsTerminal() {
		return false, nil
	}

	order.Status = status
	order.Message = message
	order.Reason = reason
	order.UpdatedAt = time.Now().UTC()
	m.Orders[orderID] = order
	return true, nil
}
