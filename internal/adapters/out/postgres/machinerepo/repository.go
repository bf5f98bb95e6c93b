package machinerepo

import (
	"context"
	"errors"
	"fmt"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/machine"
	"textile/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormMachineRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormMachineRepository(db *gorm.DB, tracker aggregateTracker) *GormMachineRepository {
	return &GormMachineRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormMachineRepository) Add(ctx context.Context, aggregate *machine.Machine) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewStateConflictError("machine", fmt.Sprintf("code %s is already registered", dto.Code))
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the machine only if its row still carries the version it was loaded with and
// bumps the version. The head assignment is rewritten as a whole.
func (r *GormMachineRepository) Update(ctx context.Context, aggregate *machine.Machine) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MachineDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":         dto.Status,
			"running_job_id": dto.RunningJobID,
			"manufacturer":   dto.Manufacturer,
			"version":        gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errs.NewStateConflictError("machine", "job is already running on another machine")
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	if err := r.db.WithContext(ctx).Where("machine_id = ?", dto.ID).Delete(&HeadDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Heads) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Heads).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormMachineRepository) Get(ctx context.Context, id kernel.UUID) (*machine.Machine, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MachineDTO
	if err := r.db.WithContext(ctx).Preload("Heads").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("machine", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormMachineRepository) missingOrStale(ctx context.Context, aggregate *machine.Machine) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&MachineDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("machine", aggregate.ID().String())
	}
	return errs.NewStateConflictError("machine",
		fmt.Sprintf("machine %s was changed concurrently, version %d is stale", aggregate.Code(), aggregate.Version()))
}
