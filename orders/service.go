package orders

import (
	"context"
	"shop/db"
	"shop/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"
)

type Service struct {
	orderRepo db.IOrderRepository
}

func NewService(orderRepo db.IOrderRepository) Service {
	if orderRepo == nil {
		panic("orderRepo is nil")
	}
	return Service{
		orderRepo: orderRepo,
	}
}

// CreateOrder persists a PENDING order and hands OrderCreated to the outbox.
// The correlation ID minted here travels unchanged through the whole saga.
func (s Service) CreateOrder(ctx context.Context, order entities.Order) (entities.Order, error) {
	if order.OrderID == uuid.Nil {
		order.OrderID = uuid.New()
	}
	order.Status = entities.OrderStatusPending
	order.Message = "Order received. Inventory check in progress."

	correlationID := shortuuid.New()

	if err := s.orderRepo.Create(ctx, order, correlationID); err != nil {
		return entities.Order{}, err
	}

	log.FromContext(ctx).WithFields(logrus.Fields{
		"order_id":       order.OrderID,
		"correlation_id": correlationID,
	}).Info("Order created")

	return s.orderRepo.ByID(ctx, order.OrderID)
}

func (s Service) GetOrder(ctx context.Context, orderID uuid.UUID) (entities.Order, error) {
	return s.orderRepo.ByID(ctx, orderID)
}
