package shiftrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/shift"
	"textile/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormShiftReportRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShiftReportRepository(db *gorm.DB, tracker aggregateTracker) *GormShiftReportRepository {
	return &GormShiftReportRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add stores a new report. A second report for the same machine, date and shift is a
// StateConflictError.
func (r *GormShiftReportRepository) Add(ctx context.Context, aggregate *shift.Report) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewStateConflictError("shift report", fmt.Sprintf("%s shift of %s is already reported",
				dto.Shift, dto.Date.Format(time.DateOnly)))
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShiftReportRepository) Update(ctx context.Context, aggregate *shift.Report) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ReportDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"quantity":  dto.Quantity,
		"timer":     dto.Timer,
		"feedback":  dto.Feedback,
		"status":    dto.Status,
		"closed_at": dto.ClosedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shift report", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShiftReportRepository) GetOpenByMachine(ctx context.Context, machineID kernel.UUID) (*shift.Report, error) {
	if err := machineID.Validate(); err != nil {
		return nil, err
	}

	var dto ReportDTO
	err := r.db.WithContext(ctx).
		Where("machine_id = ? AND status = ?", machineID.Bytes(), int(shift.Open)).
		Order("date DESC, shift DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("open shift report", machineID.String(),
				errors.New("no open report for machine"))
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormShiftReportRepository) ExistsFor(
	ctx context.Context,
	machineID kernel.UUID,
	date time.Time,
	s shift.Shift,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ReportDTO{}).
		Where("machine_id = ? AND date = ? AND shift = ?", machineID.Bytes(), shift.SlotDate(date), string(s)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
