// Package jobrepo maps JobOrder aggregates onto the jobs, job_lines and job_wastages tables.
package jobrepo

import (
	"time"

	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type JobDTO struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID    `gorm:"type:uuid;not null;index"`
	Status       int          `gorm:"type:smallint;not null;index"`
	MachineID    *uuid.UUID   `gorm:"type:uuid;index"`
	WarpingID    uuid.UUID    `gorm:"type:uuid;not null"`
	CoveringID   uuid.UUID    `gorm:"type:uuid;not null"`
	CancelReason string       `gorm:"type:text"`
	CreatedAt    time.Time    `gorm:"not null"`
	Lines        []LineDTO    `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
	Wastages     []WastageDTO `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}

func (JobDTO) TableName() string {
	return "jobs"
}

type LineDTO struct {
	JobID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Planned   int       `gorm:"not null"`
	Produced  int       `gorm:"not null"`
	Packed    int       `gorm:"not null"`
	Wasted    int       `gorm:"not null"`
}

func (LineDTO) TableName() string {
	return "job_lines"
}

type WastageDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity   int       `gorm:"not null"`
	Reason     string    `gorm:"type:text"`
	RecordedAt time.Time `gorm:"not null"`
}

func (WastageDTO) TableName() string {
	return "job_wastages"
}

func fromDomain(aggregate *job.Job) JobDTO {
	id := aggregate.ID().Bytes()

	lines := make([]LineDTO, 0, len(aggregate.Lines()))
	for _, l := range aggregate.Lines() {
		lines = append(lines, LineDTO{
			JobID:     id,
			ProductID: l.ProductID().Bytes(),
			Planned:   l.Planned(),
			Produced:  l.Produced(),
			Packed:    l.Packed(),
			Wasted:    l.Wasted(),
		})
	}

	wastages := make([]WastageDTO, 0, len(aggregate.Wastages()))
	for _, w := range aggregate.Wastages() {
		wastages = append(wastages, WastageDTO{
			ID:         w.ID().Bytes(),
			JobID:      id,
			ProductID:  w.ProductID().Bytes(),
			EmployeeID: w.EmployeeID().Bytes(),
			Quantity:   w.Quantity(),
			Reason:     w.Reason(),
			RecordedAt: w.RecordedAt(),
		})
	}

	return JobDTO{
		ID:           id,
		OrderID:      aggregate.OrderID().Bytes(),
		Status:       int(aggregate.Status()),
		MachineID:    kernel.NullableBytes(aggregate.MachineID()),
		WarpingID:    aggregate.WarpingID().Bytes(),
		CoveringID:   aggregate.CoveringID().Bytes(),
		CancelReason: aggregate.CancelReason(),
		CreatedAt:    aggregate.CreatedAt(),
		Lines:        lines,
		Wastages:     wastages,
	}
}

func toDomain(dto JobDTO) (*job.Job, error) {
	ids := make([]kernel.UUID, 4)
	for i, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.WarpingID, dto.CoveringID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	machineID, err := kernel.UUIDFromNullable(dto.MachineID)
	if err != nil {
		return nil, err
	}

	lines := make([]job.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		productID, err := kernel.UUIDFromBytes(l.ProductID[:])
		if err != nil {
			return nil, err
		}
		line, err := job.RestoreLine(productID, l.Planned, l.Produced, l.Packed, l.Wasted)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	wastages := make([]job.Wastage, 0, len(dto.Wastages))
	for _, w := range dto.Wastages {
		wastage, err := wastageToDomain(w)
		if err != nil {
			return nil, err
		}
		wastages = append(wastages, wastage)
	}

	return job.RestoreJob(ids[0], ids[1], lines, job.Status(dto.Status), machineID, ids[2], ids[3],
		wastages, dto.CancelReason, dto.CreatedAt)
}

func wastageToDomain(dto WastageDTO) (job.Wastage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return job.Wastage{}, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return job.Wastage{}, err
	}
	employeeID, err := kernel.UUIDFromBytes(dto.EmployeeID[:])
	if err != nil {
		return job.Wastage{}, err
	}
	return job.NewWastage(id, productID, employeeID, dto.Quantity, dto.Reason, dto.RecordedAt)
}
