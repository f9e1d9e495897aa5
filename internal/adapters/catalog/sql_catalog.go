package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"pickup-route-service/internal/domain"
	"pickup-route-service/internal/platform/obs"
)

// SQLCatalog is a postgres-backed implementation of the Catalog port.
type SQLCatalog struct {
	DB *sql.DB
}

func NewSQLCatalog(db *sql.DB) *SQLCatalog {
	return &SQLCatalog{DB: db}
}

func (s *SQLCatalog) Product(ctx context.Context, productID int64) (_ domain.Product, err error) {
	defer obs.Time(ctx, "catalog.sql.Product")(&err)

	if s.DB == nil {
		return domain.Product{}, errors.New("sql catalog: db is nil")
	}

	var name string
	err = s.DB.QueryRowContext(ctx, `
	SELECT name
	FROM products
	WHERE product_id = $1;
	`, productID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %d: %w", productID, domain.ErrUnknownProduct)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %d: query products table: %w", productID, err)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT part_id, quantity
	FROM product_parts
	WHERE product_id = $1;
	`, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %d: query product_parts table: %w", productID, err)
	}
	defer rows.Close()

	parts := make(map[int64]int)
	for rows.Next() {
		var partID int64
		var qty int
		if err := rows.Scan(&partID, &qty); err != nil {
			return domain.Product{}, fmt.Errorf("get product %d: scan rows: %w", productID, err)
		}
		parts[partID] = qty
	}
	if err := rows.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("get product %d: row iteration: %w", productID, err)
	}

	return domain.Product{ProductID: productID, Name: name, Parts: parts}, nil
}

func (s *SQLCatalog) Part(ctx context.Context, partID int64) (domain.Part, error) {
	if s.DB == nil {
		return domain.Part{}, errors.New("sql catalog: db is nil")
	}

	var name string
	var x, y float64
	err := s.DB.QueryRowContext(ctx, `
	SELECT name, x, y
	FROM parts
	WHERE part_id = $1;
	`, partID).Scan(&name, &x, &y)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Part{}, fmt.Errorf("part %d: %w", partID, domain.ErrUnknownPart)
	}
	if err != nil {
		return domain.Part{}, fmt.Errorf("get part %d: query parts table: %w", partID, err)
	}

	return domain.Part{PartID: partID, Name: name, Location: domain.Point{X: x, Y: y}}, nil
}
