package ports

import (
	"context"
	"pickup-route-service/internal/domain"
)

// Port: a boundary for resolving products into the parts they require.
type Catalog interface {
	// Return the product with the given ID or domain.ErrUnknownProduct.
	Product(ctx context.Context, productID int64) (domain.Product, error)

	// Return the part with the given ID or domain.ErrUnknownPart.
	Part(ctx context.Context, partID int64) (domain.Part, error)
}
