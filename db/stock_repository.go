package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"shop/entities"

	"github.com/google/uuid"
)

type IStockRepository interface {
	Reserve(ctx context.Context, productID uuid.UUID, quantity int) error
	Restock(ctx context.Context, productID uuid.UUID, quantity int) error
	ByProductID(ctx context.Context, productID uuid.UUID) (entities.ProductStock, error)
}

type StockRepository struct {
	db *DB
}

func NewStockRepository(db *DB) StockRepository {
	if db == nil {
		panic("db is nil")
	}
	return StockRepository{
		db: db,
	}
}

// Reserve moves quantity units from available to reserved for a single
// product. The row lock spans the whole read-compare-write sequence, so two
// concurrent reservations against the same product cannot both observe
// sufficient stock. Reservations for different products never contend.
func (sr StockRepository) Reserve(ctx context.Context, productID uuid.UUID, quantity int) (err error) {
	tx, err := sr.db.Conn.BeginTxx(ctx, &sql.TxOptions{})
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

	availableStock := 0
	err = tx.GetContext(ctx, &availableStock, `
		SELECT
		    available_stock
		FROM
		    products_stock
		WHERE
		    product_id = $1
		FOR UPDATE
	`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get stock for product %s: %w", productID, err)
	}

	if availableStock < quantity {
		return ErrInsufficientStock
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE products_stock
		SET available_stock = available_stock - $1,
		    reserved_stock = reserved_stock + $1,
		    updated_at = now()
		WHERE product_id = $2
	`, quantity, productID)
	if isErrorCheckViolation(err) {
		return ErrInsufficientStock
	}
	if err != nil {
		return fmt.Errorf("could not reserve stock for product %s: %w", productID, err)
	}

	return nil
}

// Restock adds quantity units to available stock, creating the record when
// the product is new. It is the only operation that grows
// available + reserved.
func (sr StockRepository) Restock(ctx context.Context, productID uuid.UUID, quantity int) error {
	_, err := sr.db.Conn.ExecContext(ctx, `
		INSERT INTO products_stock (product_id, available_stock, reserved_stock, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id) DO UPDATE
		SET available_stock = products_stock.available_stock + $2,
		    updated_at = now()
	`, productID, quantity)
	if err != nil {
		return fmt.Errorf("could not restock product %s: %w", productID, err)
	}

	return nil
}

// ByProductID reads the record without locking it. Display only, the
// reservation path never goes through here.
func (sr StockRepository) ByProductID(ctx context.Context, productID uuid.UUID) (entities.ProductStock, error) {
	var stock entities.ProductStock
	err := sr.db.Conn.GetContext(ctx, &stock, `
		SELECT product_id, available_stock, reserved_stock, updated_at
		FROM products_stock
		WHERE product_id = $1
	`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.ProductStock{}, ErrProductNotFound
	}
	if err != nil {
		return entities.ProductStock{}, fmt.Errorf("could not get stock for product %s: %w", productID, err)
	}

	return stock, nil
}
