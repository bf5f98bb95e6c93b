package queries

import (
	"context"

	"textile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetLowStockMaterialsQueryHandler struct {
	db *gorm.DB
}

func NewGetLowStockMaterialsQueryHandler(db *gorm.DB) GetLowStockMaterialsQueryHandler {
	return GetLowStockMaterialsQueryHandler{db: db}
}

// Handle returns the materials with the largest shortfall first.
func (h GetLowStockMaterialsQueryHandler) Handle(
	ctx context.Context,
	query GetLowStockMaterialsQuery,
) ([]GetLowStockMaterialsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, category, stock, min_stock, total_consumption
		FROM raw_materials
		WHERE stock < min_stock
		ORDER BY min_stock - stock DESC, name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	materials := make([]GetLowStockMaterialsQueryResponse, 0)
	for rows.Next() {
		var m GetLowStockMaterialsQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &m.Name, &m.Category, &m.Stock, &m.MinStock, &m.TotalConsumption); err != nil {
			return nil, err
		}
		if m.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return materials, nil
}
