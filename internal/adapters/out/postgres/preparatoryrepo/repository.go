package preparatoryrepo

import (
	"context"
	"errors"
	"fmt"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/preparatory"
	"textile/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormPreparatoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPreparatoryRepository(db *gorm.DB, tracker aggregateTracker) *GormPreparatoryRepository {
	return &GormPreparatoryRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormPreparatoryRepository) Add(ctx context.Context, aggregate *preparatory.Process) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewStateConflictError("preparatory record",
				fmt.Sprintf("job %s already has a %s record", aggregate.JobID(), aggregate.Kind()))
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the status only; planned lines never change after creation.
func (r *GormPreparatoryRepository) Update(ctx context.Context, aggregate *preparatory.Process) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RecordDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":       dto.Status,
		"completed_at": dto.CompletedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("preparatory record", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPreparatoryRepository) Get(ctx context.Context, id kernel.UUID) (*preparatory.Process, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).Preload("Lines").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("preparatory record", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPreparatoryRepository) GetByJob(ctx context.Context, jobID kernel.UUID) ([]*preparatory.Process, error) {
	if err := jobID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RecordDTO
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("job_id = ?", jobID.Bytes()).
		Order("kind DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*preparatory.Process, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, nil
}
