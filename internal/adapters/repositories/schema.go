package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the postgres schema for the catalog, order batches and the
// route cache.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPartsQuery := `
	CREATE TABLE IF NOT EXISTS parts (
		part_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL
	);
	`

	createProductsQuery := `
	CREATE TABLE IF NOT EXISTS products (
		product_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL
	);
	`

	createProductPartsQuery := `
	CREATE TABLE IF NOT EXISTS product_parts (
		product_id BIGINT NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
		part_id BIGINT NOT NULL REFERENCES parts(part_id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		PRIMARY KEY (product_id, part_id)
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		batch TEXT NOT NULL,
		order_id BIGINT NOT NULL,
		delivery_x DOUBLE PRECISION NOT NULL,
		delivery_y DOUBLE PRECISION NOT NULL,
		products JSONB NOT NULL,
		PRIMARY KEY (batch, order_id)
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		order_id BIGINT NOT NULL,
		start_x DOUBLE PRECISION NOT NULL,
		start_y DOUBLE PRECISION NOT NULL,
		input_hash BIGINT NOT NULL,
		pickup_order JSONB NOT NULL,
		length DOUBLE PRECISION NOT NULL,
		degenerate BOOLEAN NOT NULL,
		PRIMARY KEY (order_id, start_x, start_y, input_hash)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_order_id
	ON orders(order_id);
	`

	statements := []string{
		createPartsQuery,
		createProductsQuery,
		createProductPartsQuery,
		createOrdersQuery,
		createRouteCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
