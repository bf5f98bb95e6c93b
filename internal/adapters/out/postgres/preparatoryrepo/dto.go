// Package preparatoryrepo maps warping and covering records onto the preparatory_records and
// preparatory_lines tables.
package preparatoryrepo

import (
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/preparatory"

	"github.com/google/uuid"
)

type RecordDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_preparatory_job_kind"`
	Kind        string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_preparatory_job_kind"`
	Status      int       `gorm:"type:smallint;not null"`
	CompletedAt *time.Time
	Lines       []LineDTO `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE"`
}

func (RecordDTO) TableName() string {
	return "preparatory_records"
}

type LineDTO struct {
	RecordID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Planned   int       `gorm:"not null"`
}

func (LineDTO) TableName() string {
	return "preparatory_lines"
}

func fromDomain(aggregate *preparatory.Process) RecordDTO {
	id := aggregate.ID().Bytes()
	planned := aggregate.Planned()

	lines := make([]LineDTO, 0, planned.Len())
	for _, productID := range planned.ProductIDs() {
		lines = append(lines, LineDTO{RecordID: id, ProductID: productID.Bytes(), Planned: planned.Of(productID)})
	}

	return RecordDTO{
		ID:          id,
		JobID:       aggregate.JobID().Bytes(),
		Kind:        string(aggregate.Kind()),
		Status:      int(aggregate.Status()),
		CompletedAt: aggregate.CompletedAt(),
		Lines:       lines,
	}
}

func toDomain(dto RecordDTO) (*preparatory.Process, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	jobID, err := kernel.UUIDFromBytes(dto.JobID[:])
	if err != nil {
		return nil, err
	}

	values := make(map[kernel.UUID]int, len(dto.Lines))
	for _, l := range dto.Lines {
		productID, err := kernel.UUIDFromBytes(l.ProductID[:])
		if err != nil {
			return nil, err
		}
		values[productID] = l.Planned
	}
	planned, err := kernel.NewQuantities(values)
	if err != nil {
		return nil, err
	}

	return preparatory.RestoreProcess(id, jobID, preparatory.Kind(dto.Kind), planned,
		preparatory.Status(dto.Status), dto.CompletedAt)
}
