// Package costing computes raw material requirements from the product_recipes table.
package costing

import (
	"context"
	"fmt"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeDTO is the weight of one material needed per meter of a product.
type RecipeDTO struct {
	ProductID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	MaterialID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	GramsPerMeter float64   `gorm:"type:numeric(12,4);not null"`
}

func (RecipeDTO) TableName() string {
	return "product_recipes"
}

type GormCostingService struct {
	db *gorm.DB
}

func NewGormCostingService(db *gorm.DB) *GormCostingService {
	return &GormCostingService{db: db}
}

// ComputeRequirements returns, per material, grams per meter times the ordered meters in kg.
// Every product must have a recipe.
func (s *GormCostingService) ComputeRequirements(ctx context.Context, quantities kernel.Quantities) ([]order.Requirement, error) {
	if err := quantities.Validate(); err != nil {
		return nil, err
	}

	productIDs := quantities.ProductIDs()
	raw := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		raw = append(raw, id.Bytes())
	}

	var recipes []RecipeDTO
	if err := s.db.WithContext(ctx).
		Where("product_id IN ?", raw).
		Order("material_id").
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	covered := make(map[uuid.UUID]bool, len(productIDs))
	var (
		materialIDs []uuid.UUID
		weights     = make(map[uuid.UUID]float64)
	)
	for _, recipe := range recipes {
		productID, err := kernel.UUIDFromBytes(recipe.ProductID[:])
		if err != nil {
			return nil, err
		}
		covered[recipe.ProductID] = true
		if _, seen := weights[recipe.MaterialID]; !seen {
			materialIDs = append(materialIDs, recipe.MaterialID)
		}
		weights[recipe.MaterialID] += recipe.GramsPerMeter * float64(quantities.Of(productID)) / 1000
	}
	for _, id := range productIDs {
		if !covered[id.Bytes()] {
			return nil, errs.NewObjectNotFoundErrorWithCause("recipe", id.String(),
				fmt.Errorf("product %s has no recipe", id))
		}
	}

	requirements := make([]order.Requirement, 0, len(materialIDs))
	for _, rawID := range materialIDs {
		materialID, err := kernel.UUIDFromBytes(rawID[:])
		if err != nil {
			return nil, err
		}
		if weights[rawID] <= 0 {
			continue
		}
		requirement, err := order.NewRequirement(materialID, weights[rawID])
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, requirement)
	}
	return requirements, nil
}
