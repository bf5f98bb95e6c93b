// Package ports defines the contracts between the production core and its infrastructure:
// repositories bound to a unit of work, the costing calculator and the customer/employee directory.
package ports

import (
	"context"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates together with their product lines, material
// requirements and job references.
type OrderRepository interface {
	// Add persists a new order. The order must be valid.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
