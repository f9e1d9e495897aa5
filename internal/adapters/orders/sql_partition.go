package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"pickup-route-service/internal/domain"
)

// SQLPartition is an order partition holding one batch of the orders table.
type SQLPartition struct {
	DB    *sql.DB
	Batch string
}

func NewSQLPartition(db *sql.DB, batch string) *SQLPartition {
	return &SQLPartition{DB: db, Batch: batch}
}

func (p *SQLPartition) Name() string {
	return "sql:" + p.Batch
}

func (p *SQLPartition) Scan(ctx context.Context, visit func(domain.Order) bool) error {
	if p.DB == nil {
		return errors.New("sql partition: db is nil")
	}

	q := `
	SELECT order_id, delivery_x, delivery_y, products
	FROM orders
	WHERE batch = $1
	ORDER BY order_id;
	`

	rows, err := p.DB.QueryContext(ctx, q, p.Batch)
	if err != nil {
		return fmt.Errorf("scan %s: query orders table: %w", p.Name(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       int64
			x, y     float64
			products []byte
		)
		if err := rows.Scan(&id, &x, &y, &products); err != nil {
			return fmt.Errorf("scan %s: scan row: %w", p.Name(), err)
		}

		var productIDs []int64
		if err := json.Unmarshal(products, &productIDs); err != nil {
			return fmt.Errorf("scan %s: order %d products: %w", p.Name(), id, err)
		}

		o := domain.Order{
			OrderID:       uint64(id),
			DeliveryPoint: domain.Point{X: x, Y: y},
			ProductIDs:    productIDs,
		}
		if !visit(o) {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("scan %s: row iteration: %w", p.Name(), err)
	}

	return nil
}
