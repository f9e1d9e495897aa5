package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"pickup-route-service/internal/domain"
	"strings"
)

// Populate the catalog tables from parsed products and parts.
// Existing rows with the same IDs are replaced.
func SeedCatalog(ctx context.Context, db *sql.DB, parts []domain.Part, products []domain.Product) error {
	if db == nil {
		return errors.New("seed catalog: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	partStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO parts (part_id, name, x, y)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (part_id) DO UPDATE
	SET name = EXCLUDED.name,
		x = EXCLUDED.x,
		y = EXCLUDED.y;
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare part insert: %w", err)
	}
	defer partStmt.Close()

	for _, p := range parts {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("seed catalog: part_id=%d: name cannot be empty", p.PartID)
		}
		if _, err := partStmt.ExecContext(ctx, p.PartID, p.Name, p.Location.X, p.Location.Y); err != nil {
			return fmt.Errorf("seed catalog: insert part_id=%d: %w", p.PartID, err)
		}
	}

	productStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO products (product_id, name)
	VALUES ($1, $2)
	ON CONFLICT (product_id) DO UPDATE
	SET name = EXCLUDED.name;
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare product insert: %w", err)
	}
	defer productStmt.Close()

	linkStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO product_parts (product_id, part_id, quantity)
	VALUES ($1, $2, $3);
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare product part insert: %w", err)
	}
	defer linkStmt.Close()

	for _, p := range products {
		if _, err := productStmt.ExecContext(ctx, p.ProductID, p.Name); err != nil {
			return fmt.Errorf("seed catalog: insert product_id=%d: %w", p.ProductID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_parts WHERE product_id = $1;`, p.ProductID); err != nil {
			return fmt.Errorf("seed catalog: clear parts of product_id=%d: %w", p.ProductID, err)
		}
		for partID, qty := range p.Parts {
			if _, err := linkStmt.ExecContext(ctx, p.ProductID, partID, qty); err != nil {
				return fmt.Errorf("seed catalog: link product_id=%d part_id=%d: %w", p.ProductID, partID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}

// Populate one order batch. Existing orders of the batch with the same
// IDs are replaced.
func SeedOrders(ctx context.Context, db *sql.DB, batch string, orders []domain.Order) error {
	if db == nil {
		return errors.New("seed orders: DB is nil")
	}

	batch = strings.TrimSpace(batch)
	if batch == "" {
		return errors.New("seed orders: batch cannot be empty")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed orders: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO orders (batch, order_id, delivery_x, delivery_y, products)
	VALUES ($1, $2, $3, $4, $5::jsonb)
	ON CONFLICT (batch, order_id) DO UPDATE
	SET delivery_x = EXCLUDED.delivery_x,
		delivery_y = EXCLUDED.delivery_y,
		products = EXCLUDED.products;
	`)
	if err != nil {
		return fmt.Errorf("seed orders: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range orders {
		products := o.ProductIDs
		if products == nil {
			products = []int64{}
		}
		raw, err := json.Marshal(products)
		if err != nil {
			return fmt.Errorf("seed orders: encode products of order_id=%d: %w", o.OrderID, err)
		}

		if _, err := stmt.ExecContext(ctx, batch, int64(o.OrderID), o.DeliveryPoint.X, o.DeliveryPoint.Y, string(raw)); err != nil {
			return fmt.Errorf("seed orders: insert order_id=%d: %w", o.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed orders: commit tx: %w", err)
	}

	return nil
}
