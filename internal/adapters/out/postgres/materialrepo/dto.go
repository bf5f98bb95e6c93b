// Package materialrepo maps RawMaterial aggregates onto the raw_materials table and its
// append-only material_movements log.
package materialrepo

import (
	"sort"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/material"

	"github.com/google/uuid"
)

type MaterialDTO struct {
	ID               uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Name             string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	Category         string        `gorm:"type:varchar(64);index"`
	Stock            float64       `gorm:"type:numeric(14,3);not null"`
	MinStock         float64       `gorm:"type:numeric(14,3);not null"`
	TotalConsumption float64       `gorm:"type:numeric(14,3);not null"`
	Movements        []MovementDTO `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
}

func (MaterialDTO) TableName() string {
	return "raw_materials"
}

type MovementDTO struct {
	MaterialID uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq        int        `gorm:"primaryKey"`
	Kind       string     `gorm:"type:varchar(32);not null"`
	OrderID    *uuid.UUID `gorm:"type:uuid;index"`
	Reference  string     `gorm:"type:varchar(255)"`
	Delta      float64    `gorm:"type:numeric(14,3);not null"`
	Balance    float64    `gorm:"type:numeric(14,3);not null"`
	OccurredAt time.Time  `gorm:"not null"`
}

func (MovementDTO) TableName() string {
	return "material_movements"
}

func fromDomain(aggregate *material.RawMaterial) MaterialDTO {
	id := aggregate.ID().Bytes()

	movements := make([]MovementDTO, 0, len(aggregate.Movements()))
	for _, m := range aggregate.Movements() {
		movements = append(movements, MovementDTO{
			MaterialID: id,
			Seq:        m.Seq(),
			Kind:       string(m.Kind()),
			OrderID:    kernel.NullableBytes(m.OrderID()),
			Reference:  m.Reference(),
			Delta:      m.Delta(),
			Balance:    m.Balance(),
			OccurredAt: m.OccurredAt(),
		})
	}

	return MaterialDTO{
		ID:               id,
		Name:             aggregate.Name(),
		Category:         aggregate.Category(),
		Stock:            aggregate.Stock(),
		MinStock:         aggregate.MinStock(),
		TotalConsumption: aggregate.TotalConsumption(),
		Movements:        movements,
	}
}

func toDomain(dto MaterialDTO) (*material.RawMaterial, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sort.Slice(dto.Movements, func(i, j int) bool { return dto.Movements[i].Seq < dto.Movements[j].Seq })
	movements := make([]material.Movement, 0, len(dto.Movements))
	for _, m := range dto.Movements {
		orderID, err := kernel.UUIDFromNullable(m.OrderID)
		if err != nil {
			return nil, err
		}
		movement, err := material.RestoreMovement(m.Seq, material.MovementKind(m.Kind), orderID, m.Reference,
			m.Delta, m.Balance, m.OccurredAt)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}

	return material.RestoreRawMaterial(id, dto.Name, dto.Category, dto.Stock, dto.MinStock, dto.TotalConsumption, movements)
}
