package ports

import (
	"context"
	"fmt"
	"pickup-route-service/internal/domain"
)

// Identifies a solved route. Inputs fingerprints the delivery point and the
// ordered pickup coordinates, so an order whose data changed gets a new key.
type RouteKey struct {
	OrderID uint64
	Start   domain.Point
	Inputs  uint64
}

func (k RouteKey) String() string {
	return fmt.Sprintf("%d@%g,%g#%016x", k.OrderID, k.Start.X, k.Start.Y, k.Inputs)
}

// Contract for storing solved routes between planning calls.
type RouteCache interface {
	// Return the cached route and true, or false on a miss.
	Get(ctx context.Context, key RouteKey) (domain.RouteResult, bool, error)

	// Store a solved route.
	Put(ctx context.Context, key RouteKey, route domain.RouteResult) error
}
