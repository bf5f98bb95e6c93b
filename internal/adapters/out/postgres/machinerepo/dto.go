// Package machinerepo maps Machine aggregates onto the machines and machine_heads tables.
package machinerepo

import (
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/machine"

	"github.com/google/uuid"
)

type MachineDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code         string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	Manufacturer string     `gorm:"type:varchar(255)"`
	HeadCount    int        `gorm:"not null"`
	Status       int        `gorm:"type:smallint;not null;index"`
	RunningJobID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Version      int        `gorm:"not null;default:0"`
	Heads        []HeadDTO  `gorm:"foreignKey:MachineID;constraint:OnDelete:CASCADE"`
}

func (MachineDTO) TableName() string {
	return "machines"
}

// HeadDTO is one head of the last assignment of a machine.
type HeadDTO struct {
	MachineID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Head      int       `gorm:"primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
}

func (HeadDTO) TableName() string {
	return "machine_heads"
}

func fromDomain(aggregate *machine.Machine) MachineDTO {
	id := aggregate.ID().Bytes()

	assignment := aggregate.Heads()
	heads := make([]HeadDTO, 0, len(assignment.Heads()))
	for _, head := range assignment.Heads() {
		productID, _ := assignment.ProductAt(head)
		heads = append(heads, HeadDTO{MachineID: id, Head: head, ProductID: productID.Bytes()})
	}

	return MachineDTO{
		ID:           id,
		Code:         aggregate.Code(),
		Manufacturer: aggregate.Manufacturer(),
		HeadCount:    aggregate.HeadCount(),
		Status:       int(aggregate.Status()),
		RunningJobID: kernel.NullableBytes(aggregate.RunningJobID()),
		Version:      aggregate.Version(),
		Heads:        heads,
	}
}

func toDomain(dto MachineDTO) (*machine.Machine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	runningJobID, err := kernel.UUIDFromNullable(dto.RunningJobID)
	if err != nil {
		return nil, err
	}

	products := make(map[int]kernel.UUID, len(dto.Heads))
	for _, h := range dto.Heads {
		productID, err := kernel.UUIDFromBytes(h.ProductID[:])
		if err != nil {
			return nil, err
		}
		products[h.Head] = productID
	}
	heads, err := machine.RestoreHeadAssignment(products)
	if err != nil {
		return nil, err
	}

	return machine.RestoreMachine(id, dto.Code, dto.Manufacturer, dto.HeadCount, machine.Status(dto.Status),
		heads, runningJobID, dto.Version)
}
