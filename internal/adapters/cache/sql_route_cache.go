package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"pickup-route-service/internal/domain"
	"pickup-route-service/internal/platform/obs"
	"pickup-route-service/internal/ports"
)

// SQLRouteCache is a postgres-backed cache of solved pickup routes.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Fetch the cached route for one order and start point.
func (s *SQLRouteCache) Get(ctx context.Context, key ports.RouteKey) (_ domain.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.sql.Get")(&err)

	if s.DB == nil {
		return domain.RouteResult{}, false, errors.New("route cache: db is nil")
	}

	q := `
	SELECT pickup_order, length, degenerate
	FROM route_cache
	WHERE order_id = $1
		AND start_x = $2
		AND start_y = $3
		AND input_hash = $4;
	`

	var (
		raw        []byte
		length     float64
		degenerate bool
	)
	err = s.DB.QueryRowContext(ctx, q, int64(key.OrderID), key.Start.X, key.Start.Y, int64(key.Inputs)).Scan(&raw, &length, &degenerate)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RouteResult{}, false, nil
	}
	if err != nil {
		return domain.RouteResult{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	var order []int
	if err := json.Unmarshal(raw, &order); err != nil {
		return domain.RouteResult{}, false, fmt.Errorf("get route cache: decode pickup_order for %s: %w", key, err)
	}
	if order == nil {
		order = []int{}
	}

	return domain.RouteResult{Order: order, Length: length, Degenerate: degenerate}, true, nil
}

// Store a solved route, replacing any previous entry for the key.
func (s *SQLRouteCache) Put(ctx context.Context, key ports.RouteKey, route domain.RouteResult) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	order := route.Order
	if order == nil {
		order = []int{}
	}
	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("insert route cache: encode pickup_order for %s: %w", key, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO route_cache (order_id, start_x, start_y, input_hash, pickup_order, length, degenerate)
	VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)
	ON CONFLICT (order_id, start_x, start_y, input_hash) DO UPDATE
	SET pickup_order = EXCLUDED.pickup_order,
		length = EXCLUDED.length,
		degenerate = EXCLUDED.degenerate;
	`, int64(key.OrderID), key.Start.X, key.Start.Y, int64(key.Inputs), string(raw), route.Length, route.Degenerate)
	if err != nil {
		return fmt.Errorf("insert route cache %s: %w", key, err)
	}

	return nil
}
