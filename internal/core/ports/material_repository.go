package ports

import (
	"context"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/material"
)

// MaterialRepository persists RawMaterial aggregates. Movements are append-only: Update inserts
// the entries added since the material was loaded and never rewrites existing ones.
type MaterialRepository interface {
	Add(ctx context.Context, aggregate *material.RawMaterial) error
	Update(ctx context.Context, aggregate *material.RawMaterial) error
	Get(ctx context.Context, id kernel.UUID) (*material.RawMaterial, error)

	// GetMany loads several materials keyed by id. A missing id is an ObjectNotFoundError.
	GetMany(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*material.RawMaterial, error)
}
