package inventory

import (
	"context"
	"errors"
	"fmt"
	"shop/db"
	"shop/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
)

// StockLedger is the per-product check-and-reserve operation. Reserve either
// moves the units atomically or reports db.ErrInsufficientStock /
// db.ErrProductNotFound without mutating anything.
type StockLedger interface {
	Reserve(ctx context.Context, productID uuid.UUID, quantity int) error
}

type Decision struct {
	Reserved  bool
	ProductID uuid.UUID
	Reason    string
}

type Service struct {
	ledger StockLedger
}

func NewService(ledger StockLedger) Service {
	if ledger == nil {
		panic("ledger is nil")
	}
	return Service{
		ledger: ledger,
	}
}

// ReserveOrder walks the lines in order and reserves each one. The first
// line that cannot be satisfied rejects the whole order. Lines reserved
// before the failing one stay reserved; compensation is an operator concern,
// visible through the data lake.
func (s Service) ReserveOrder(ctx context.Context, orderID uuid.UUID, lines []entities.OrderLine) (Decision, error) {
	logger := log.FromContext(ctx).WithField("order_id", orderID)

	for _, line := range lines {
		err := s.ledger.Reserve(ctx, line.ProductID, line.Quantity)
		switch {
		case errors.Is(err, db.ErrProductNotFound):
			logger.WithField("product_id", line.ProductID).Warn("Product not found")
			return Decision{
				ProductID: line.ProductID,
				Reason:    fmt.Sprintf("Product not found: %s", line.ProductID),
			}, nil
		case errors.Is(err, db.ErrInsufficientStock):
			logger.WithField("product_id", line.ProductID).Warn("Insufficient stock")
			return Decision{
				ProductID: line.ProductID,
				Reason:    fmt.Sprintf("Insufficient stock for product %s", line.ProductID),
			}, nil
		case err != nil:
			return Decision{}, fmt.Errorf("could not reserve product %s: %w", line.ProductID, err)
		}
	}

	logger.Info("Stock reserved for all order lines")

	return Decision{Reserved: true}, nil
}
