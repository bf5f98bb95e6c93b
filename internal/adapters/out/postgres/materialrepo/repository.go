package materialrepo

import (
	"context"
	"errors"
	"fmt"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/material"
	"textile/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormMaterialRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormMaterialRepository(db *gorm.DB, tracker aggregateTracker) *GormMaterialRepository {
	return &GormMaterialRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormMaterialRepository) Add(ctx context.Context, aggregate *material.RawMaterial) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewStateConflictError("material", fmt.Sprintf("%s is already registered", dto.Name))
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the stock counters and appends movements that are not stored yet. Stored
// movements are left untouched.
func (r *GormMaterialRepository) Update(ctx context.Context, aggregate *material.RawMaterial) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MaterialDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"category":          dto.Category,
		"stock":             dto.Stock,
		"min_stock":         dto.MinStock,
		"total_consumption": dto.TotalConsumption,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("material", aggregate.ID().String())
	}

	if len(dto.Movements) > 0 {
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Movements).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a material and locks its row until the transaction ends.
func (r *GormMaterialRepository) Get(ctx context.Context, id kernel.UUID) (*material.RawMaterial, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MaterialDTO
	if err := r.locked(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("material", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany loads and locks materials in id order so concurrent approvals lock in the same order.
func (r *GormMaterialRepository) GetMany(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]*material.RawMaterial, error) {
	raw := make([]any, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}
	materials := make(map[kernel.UUID]*material.RawMaterial, len(ids))
	if len(raw) == 0 {
		return materials, nil
	}

	var dtos []MaterialDTO
	if err := r.locked(ctx).Where("id IN ?", raw).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		materials[m.ID()] = m
	}
	for _, id := range ids {
		if _, ok := materials[id]; !ok {
			return nil, errs.NewObjectNotFoundError("material", id.String())
		}
	}
	return materials, nil
}

func (r *GormMaterialRepository) locked(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Movements", func(db *gorm.DB) *gorm.DB { return db.Order("seq") })
}
