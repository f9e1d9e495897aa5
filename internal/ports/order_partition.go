package ports

import (
	"context"
	"pickup-route-service/internal/domain"
)

// Port: one independent, read-only source of order records.
type OrderPartition interface {
	// Human-readable partition name used in logs and results.
	Name() string

	// Visit every order record in storage order until visit returns false.
	// An error means the partition could not be read (fully or partially).
	Scan(ctx context.Context, visit func(domain.Order) bool) error
}
