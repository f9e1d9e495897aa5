package services

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"pickup-route-service/internal/domain"
	"pickup-route-service/internal/platform/logger"
	"pickup-route-service/internal/platform/metrics"
	"pickup-route-service/internal/platform/obs"
	"pickup-route-service/internal/ports"
	"slices"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

type PlanPickupsRequest struct {
	OrderID uint64
	Robot   *domain.Robot
	// Overrides Robot.Start when set.
	Start *domain.Point
}

// PlanPickups resolves an order and plans the shortest pickup route for it.
//
// The order is located across all partitions, its products are expanded
// into distinct parts through the catalog, and the robot visits every part
// location once before finishing at the order's delivery point. cache may
// be nil; cache failures are logged and never fail the plan.
func PlanPickups(
	ctx context.Context,
	req PlanPickupsRequest,
	partitions []ports.OrderPartition,
	catalog ports.Catalog,
	cache ports.RouteCache,
) (_ *domain.PickupPlan, err error) {
	defer obs.Time(ctx, "services.PlanPickups")(&err)

	if req.Robot == nil {
		return nil, errors.New("plan pickups: robot must be non-nil")
	}

	start := req.Robot.Start
	if req.Start != nil {
		start = *req.Start
	}
	if !start.Valid() {
		return nil, fmt.Errorf("plan pickups: start: %w", domain.ErrInvalidPoint)
	}

	located := LocateOrder(ctx, req.OrderID, partitions)
	ReportLocate(ctx, req.OrderID, located)
	if !located.Found {
		return nil, fmt.Errorf("plan pickups: order %d: %w", req.OrderID, domain.ErrOrderNotFound)
	}

	order := located.Order
	if !order.DeliveryPoint.Valid() {
		return nil, fmt.Errorf("plan pickups: order %d delivery point: %w", order.OrderID, domain.ErrInvalidPoint)
	}

	stops, err := expandPickups(ctx, order, catalog)
	if err != nil {
		return nil, fmt.Errorf("plan pickups: order %d: %w", order.OrderID, err)
	}

	if err := req.Robot.CheckPickups(len(stops)); err != nil {
		return nil, fmt.Errorf("plan pickups: order %d: %w", order.OrderID, err)
	}

	points := make([]domain.Point, 0, len(stops))
	for _, s := range stops {
		points = append(points, s.Location)
	}

	key := ports.RouteKey{
		OrderID: order.OrderID,
		Start:   start,
		Inputs:  routeFingerprint(order.DeliveryPoint, points),
	}
	route, cached := cachedRoute(ctx, cache, key, len(points))
	if !cached {
		solveStart := time.Now()
		route = ShortestRoute(start, points, order.DeliveryPoint)
		metrics.RouteSolveDuration.WithLabelValues(strconv.Itoa(len(points))).Observe(time.Since(solveStart).Seconds())

		if cache != nil {
			if err := cache.Put(ctx, key, route); err != nil {
				metrics.RouteCacheTotal.WithLabelValues("error").Inc()
				logger.FromContext(ctx).Warn("route cache write failed", zap.Stringer("key", key), zap.Error(err))
			}
		}
	}

	// Re-expand the solver's permutation into the visiting order.
	ordered := make([]domain.PickupStop, 0, len(stops))
	for _, idx := range route.Order {
		ordered = append(ordered, stops[idx])
	}

	return &domain.PickupPlan{
		OrderID:       order.OrderID,
		Start:         start,
		Delivery:      order.DeliveryPoint,
		Stops:         ordered,
		TotalDistance: route.Length,
		Degenerate:    route.Degenerate,
		Cached:        cached,
	}, nil
}

// expandPickups turns the ordered products into one stop per distinct part,
// summing quantities, sorted by part ID.
func expandPickups(ctx context.Context, order domain.Order, catalog ports.Catalog) ([]domain.PickupStop, error) {
	if catalog == nil {
		return nil, errors.New("expand pickups: catalog must be non-nil")
	}

	quantities := make(map[int64]int)
	for _, productID := range order.ProductIDs {
		product, err := catalog.Product(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("expand pickups: product %d: %w", productID, err)
		}
		for partID, qty := range product.Parts {
			quantities[partID] += qty
		}
	}

	partIDs := make([]int64, 0, len(quantities))
	for id := range quantities {
		partIDs = append(partIDs, id)
	}
	slices.Sort(partIDs)

	stops := make([]domain.PickupStop, 0, len(partIDs))
	for _, id := range partIDs {
		part, err := catalog.Part(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("expand pickups: part %d: %w", id, err)
		}
		if !part.Location.Valid() {
			return nil, fmt.Errorf("expand pickups: part %d location: %w", id, domain.ErrInvalidPoint)
		}
		stops = append(stops, domain.PickupStop{
			PartID:   part.PartID,
			PartName: part.Name,
			Location: part.Location,
			Quantity: quantities[id],
		})
	}

	return stops, nil
}

// cachedRoute returns a cached route when it is usable for n pickup points.
func cachedRoute(ctx context.Context, cache ports.RouteCache, key ports.RouteKey, n int) (domain.RouteResult, bool) {
	if cache == nil {
		return domain.RouteResult{}, false
	}

	route, ok, err := cache.Get(ctx, key)
	if err != nil {
		metrics.RouteCacheTotal.WithLabelValues("error").Inc()
		logger.FromContext(ctx).Warn("route cache read failed", zap.Stringer("key", key), zap.Error(err))
		return domain.RouteResult{}, false
	}
	if !ok || !validOrder(route.Order, n) {
		metrics.RouteCacheTotal.WithLabelValues("miss").Inc()
		return domain.RouteResult{}, false
	}

	metrics.RouteCacheTotal.WithLabelValues("hit").Inc()
	return route, true
}

// routeFingerprint hashes the solver inputs not already in the cache key:
// the end point and the pickup coordinates in solver order.
func routeFingerprint(end domain.Point, points []domain.Point) uint64 {
	d := xxhash.New()
	var buf [8]byte
	write := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}

	write(end.X)
	write(end.Y)
	for _, p := range points {
		write(p.X)
		write(p.Y)
	}
	return d.Sum64()
}

// validOrder reports whether order is a permutation of 0..n-1.
func validOrder(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}

// ReportLocate logs the parts of a lookup result callers should know about:
// partitions that could not be scanned and duplicate matches.
func ReportLocate(ctx context.Context, orderID uint64, res domain.LocateResult) {
	l := logger.FromContext(ctx)

	for _, f := range res.Unavailable {
		l.Warn("order partition unavailable",
			zap.Uint64("order_id", orderID),
			zap.String("partition", f.Partition),
			zap.Error(f.Err),
		)
	}

	if res.DuplicateMatches > 0 {
		l.Warn("order found in more than one place, keeping first match",
			zap.Uint64("order_id", orderID),
			zap.String("partition", res.Partition),
			zap.Int("duplicates", res.DuplicateMatches),
		)
	}
}
