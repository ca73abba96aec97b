package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"shop/entities"
	"shop/message"
	"shop/message/outbox"

	"github.com/google/uuid"
)

type IOrderRepository interface {
	Create(ctx context.Context, order entities.Order, correlationID string) error
	ByID(ctx context.Context, orderID uuid.UUID) (entities.Order, error)
	Confirm(ctx context.Context, orderID uuid.UUID) (bool, error)
	Cancel(ctx context.Context, orderID uuid.UUID, reason string) (bool, error)
}

type OrderRepository struct {
	db       *DB
	topology message.Topology
}

func NewOrderRepository(db *DB, topology message.Topology) OrderRepository {
	if db == nil {
		panic("db is nil")
	}
	return OrderRepository{
		db:       db,
		topology: topology,
	}
}

// Create persists a PENDING order and writes the OrderCreated event to the
// outbox in the same transaction. A crash between commit and broker publish
// cannot lose the event; the forwarder replays it.
func (or OrderRepository) Create(ctx context.Context, order entities.Order, correlationID string) (err error) {
	tx, err := or.db.Conn.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			if rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				err = errors.Join(err, rollbackErr)
			}
			return
		}
		err = tx.Commit()
	}()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO orders (
			order_id, customer_id, status, message, reason,
			shipping_country, shipping_city, shipping_street, shipping_postal_code, shipping_zip,
			payment_reference
		)
		VALUES (
			:order_id, :customer_id, :status, :message, :reason,
			:shipping_address.country, :shipping_address.city, :shipping_address.street,
			:shipping_address.postal_code, :shipping_address.zip,
			:payment_reference
		)`, order)
	if isErrorUniqueViolation(err) {
		return ErrOrderAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("could not add order: %w", err)
	}

	for _, line := range order.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity)
			VALUES ($1, $2, $3)`,
			order.OrderID, line.ProductID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("could not add order line: %w", err)
		}
	}

	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return fmt.Errorf("error creating event outbox publisher: %w", err)
	}
	err = message.NewEventBus(outboxPublisher, or.topology).Publish(ctx, entities.OrderCreated_v1{
		Header:     entities.NewEventHeader(correlationID),
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
		Lines:      order.Lines,
	})
	if err != nil {
		return fmt.Errorf("could not publish event: %w", err)
	}

	return nil
}

func (or OrderRepository) ByID(ctx context.Context, orderID uuid.UUID) (entities.Order, error) {
	var order entities.Order
	err := or.db.Conn.GetContext(ctx, &order, `
		SELECT
		    order_id, customer_id, status, message, reason,
		    shipping_country AS "shipping_address.country",
		    shipping_city AS "shipping_address.city",
		    shipping_street AS "shipping_address.street",
		    shipping_postal_code AS "shipping_address.postal_code",
		    shipping_zip AS "shipping_address.zip",
		    payment_reference, created_at, updated_at
		FROM orders
		WHERE order_id = $1
	`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("could not get order %s: %w", orderID, err)
	}

	err = or.db.Conn.SelectContext(ctx, &order.Lines, `
		SELECT product_id, quantity
		FROM order_items
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return entities.Order{}, fmt.Errorf("could not get order lines for %s: %w", orderID, err)
	}

	return order, nil
}

// Confirm moves a PENDING order to CONFIRMED. It reports false when the
// order is already terminal, so duplicate deliveries are no-ops. An unknown
// order returns ErrOrderNotFound.
func (or OrderRepository) Confirm(ctx context.Context, orderID uuid.UUID) (bool, error) {
	res, err := or.db.Conn.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, message = $2, updated_at = now()
		WHERE order_id = $3 AND status = $4
	`, entities.OrderStatusConfirmed, "Order confirmed.", orderID, entities.OrderStatusPending)
	if err != nil {
		return false, fmt.Errorf("could not confirm order %s: %w", orderID, err)
	}

	return or.applied(ctx, res, orderID)
}

// Cancel moves a PENDING order to CANCELLED and records the reason.
// Idempotent the same way Confirm is.
func (or OrderRepository) Cancel(ctx context.Context, orderID uuid.UUID, reason string) (bool, error) {
	res, err := or.db.Conn.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, message = $2, reason = $3, updated_at = now()
		WHERE order_id = $4 AND status = $5
	`, entities.OrderStatusCancelled, "Order cancelled.", reason, orderID, entities.OrderStatusPending)
	if err != nil {
		return false, fmt.Errorf("could not cancel order %s: %w", orderID, err)
	}

	return or.applied(ctx, res, orderID)
}

func (or OrderRepository) applied(ctx context.Context, res sql.Result, orderID uuid.UUID) (bool, error) {
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}
	if rows > 0 {
		return true, nil
	}

	var exists bool
	err = or.db.Conn.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1)`, orderID)
	if err != nil {
		return false, fmt.Errorf("could not check if order %s exists: %w", orderID, err)
	}
	if !exists {
		return false, ErrOrderNotFound
	}

	return false, nil
}
