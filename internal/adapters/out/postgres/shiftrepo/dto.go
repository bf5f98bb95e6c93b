// Package shiftrepo maps shift production reports onto the shift_reports table.
package shiftrepo

import (
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/shift"

	"github.com/google/uuid"
)

type ReportDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MachineID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_shift_slot"`
	Date       time.Time  `gorm:"type:date;not null;uniqueIndex:idx_shift_slot"`
	Shift      string     `gorm:"type:varchar(8);not null;uniqueIndex:idx_shift_slot"`
	JobID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null"`
	Quantity   int        `gorm:"not null"`
	Timer      string     `gorm:"type:varchar(64)"`
	Feedback   string     `gorm:"type:text"`
	Status     int        `gorm:"type:smallint;not null;index"`
	ClosedAt   *time.Time
}

func (ReportDTO) TableName() string {
	return "shift_reports"
}

func fromDomain(aggregate *shift.Report) ReportDTO {
	return ReportDTO{
		ID:         aggregate.ID().Bytes(),
		MachineID:  aggregate.MachineID().Bytes(),
		Date:       aggregate.Date(),
		Shift:      string(aggregate.Shift()),
		JobID:      aggregate.JobID().Bytes(),
		EmployeeID: aggregate.EmployeeID().Bytes(),
		Quantity:   aggregate.Quantity(),
		Timer:      aggregate.Timer(),
		Feedback:   aggregate.Feedback(),
		Status:     int(aggregate.Status()),
		ClosedAt:   aggregate.ClosedAt(),
	}
}

func toDomain(dto ReportDTO) (*shift.Report, error) {
	ids := make([]kernel.UUID, 4)
	for i, raw := range []uuid.UUID{dto.ID, dto.MachineID, dto.JobID, dto.EmployeeID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	return shift.RestoreReport(ids[0], ids[1], ids[2], ids[3], dto.Date, shift.Shift(dto.Shift),
		dto.Quantity, dto.Timer, dto.Feedback, shift.Status(dto.Status), dto.ClosedAt)
}
