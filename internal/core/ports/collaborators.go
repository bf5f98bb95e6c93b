package ports

import (
	"context"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
)

// CostingService computes the raw material weights needed to weave product quantities.
type CostingService interface {
	ComputeRequirements(ctx context.Context, quantities kernel.Quantities) ([]order.Requirement, error)
}

// Directory resolves customer and employee references. Only existence is checked.
type Directory interface {
	CustomerExists(ctx context.Context, id kernel.UUID) (bool, error)
	EmployeeExists(ctx context.Context, id kernel.UUID) (bool, error)
}
