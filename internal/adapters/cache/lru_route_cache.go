package cache

import (
	"context"
	"fmt"
	"pickup-route-service/internal/domain"
	"pickup-route-service/internal/ports"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRURouteCache keeps the most recently used solved routes in memory.
// It is safe for concurrent use.
type LRURouteCache struct {
	entries *lru.Cache[ports.RouteKey, domain.RouteResult]
}

func NewLRURouteCache(size int) (*LRURouteCache, error) {
	entries, err := lru.New[ports.RouteKey, domain.RouteResult](size)
	if err != nil {
		return nil, fmt.Errorf("new lru route cache: %w", err)
	}
	return &LRURouteCache{entries: entries}, nil
}

func (c *LRURouteCache) Get(_ context.Context, key ports.RouteKey) (domain.RouteResult, bool, error) {
	r, ok := c.entries.Get(key)
	if !ok {
		return domain.RouteResult{}, false, nil
	}
	r.Order = slices.Clone(r.Order)
	return r, true, nil
}

func (c *LRURouteCache) Put(_ context.Context, key ports.RouteKey, route domain.RouteResult) error {
	route.Order = slices.Clone(route.Order)
	c.entries.Add(key, route)
	return nil
}

func (c *LRURouteCache) Len() int {
	return c.entries.Len()
}
