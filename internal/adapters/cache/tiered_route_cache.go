package cache

import (
	"context"
	"errors"
	"fmt"
	"pickup-route-service/internal/domain"
	"pickup-route-service/internal/ports"
)

// TieredRouteCache puts a fast cache (Near) in front of a shared one (Far).
// Far hits are copied into Near; writes go to both.
type TieredRouteCache struct {
	Near ports.RouteCache
	Far  ports.RouteCache
}

func (t *TieredRouteCache) Get(ctx context.Context, key ports.RouteKey) (domain.RouteResult, bool, error) {
	r, ok, err := t.Near.Get(ctx, key)
	if err == nil && ok {
		return r, true, nil
	}

	r, ok, farErr := t.Far.Get(ctx, key)
	if farErr != nil {
		return domain.RouteResult{}, false, errors.Join(err, fmt.Errorf("far tier: %w", farErr))
	}
	if !ok {
		return domain.RouteResult{}, false, err
	}

	// Promotion failures only cost a later far lookup.
	_ = t.Near.Put(ctx, key, r)
	return r, true, nil
}

func (t *TieredRouteCache) Put(ctx context.Context, key ports.RouteKey, route domain.RouteResult) error {
	var errs []error
	if err := t.Near.Put(ctx, key, route); err != nil {
		errs = append(errs, fmt.Errorf("near tier: %w", err))
	}
	if err := t.Far.Put(ctx, key, route); err != nil {
		errs = append(errs, fmt.Errorf("far tier: %w", err))
	}
	return errors.Join(errs...)
}
