package queries

import (
	"errors"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/guard"
)

var ErrGetLowStockMaterialsQueryIsNotConstructed = errors.New(
	"GetLowStockMaterialsQuery must be created via NewGetLowStockMaterialsQuery constructor",
)

// GetLowStockMaterialsQuery finds raw materials whose stock fell below their minimum.
// It backs the low stock endpoint, the stock command and the periodic alert.
type GetLowStockMaterialsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetLowStockMaterialsQuery() GetLowStockMaterialsQuery {
	return GetLowStockMaterialsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetLowStockMaterialsQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockMaterialsQueryIsNotConstructed)
}

// GetLowStockMaterialsQueryResponse weights are in kilograms.
type GetLowStockMaterialsQueryResponse struct {
	ID               kernel.UUID
	Name             string
	Category         string
	Stock            float64
	MinStock         float64
	TotalConsumption float64
}

// Shortfall is how much must be received to reach the minimum again.
func (r GetLowStockMaterialsQueryResponse) Shortfall() float64 {
	return r.MinStock - r.Stock
}
