// Package orderrepo maps Order aggregates onto the orders table and its child tables:
// order_lines (per product ledger), order_requirements (material snapshot) and order_jobs.
package orderrepo

import (
	"sort"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID           uuid.UUID              `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	PONumber     string                 `gorm:"column:po_number;type:varchar(64)"`
	SupplyDate   time.Time              `gorm:"type:date"`
	Status       int                    `gorm:"type:smallint;not null;index"`
	CreatedAt    time.Time              `gorm:"not null"`
	Lines        []OrderLineDTO         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Requirements []OrderRequirementDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Jobs         []OrderJobDTO          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderLineDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Ordered   int       `gorm:"not null"`
	Pending   int       `gorm:"not null"`
	Produced  int       `gorm:"not null"`
	Packed    int       `gorm:"not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

type OrderRequirementDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"primaryKey"`
	MaterialID uuid.UUID `gorm:"type:uuid;not null;index"`
	Weight     float64   `gorm:"type:numeric(14,3);not null"`
}

func (OrderRequirementDTO) TableName() string {
	return "order_requirements"
}

// OrderJobDTO references a job order in creation order.
type OrderJobDTO struct {
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"primaryKey"`
	JobID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
}

func (OrderJobDTO) TableName() string {
	return "order_jobs"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()

	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, l := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:   id,
			ProductID: l.ProductID().Bytes(),
			Ordered:   l.Ordered(),
			Pending:   l.Pending(),
			Produced:  l.Produced(),
			Packed:    l.Packed(),
		})
	}

	requirements := make([]OrderRequirementDTO, 0, len(aggregate.Requirements()))
	for i, r := range aggregate.Requirements() {
		requirements = append(requirements, OrderRequirementDTO{
			OrderID:    id,
			Position:   i + 1,
			MaterialID: r.MaterialID().Bytes(),
			Weight:     r.Weight(),
		})
	}

	jobs := make([]OrderJobDTO, 0, len(aggregate.JobIDs()))
	for i, jobID := range aggregate.JobIDs() {
		jobs = append(jobs, OrderJobDTO{OrderID: id, Position: i + 1, JobID: jobID.Bytes()})
	}

	return OrderDTO{
		ID:           id,
		CustomerID:   aggregate.CustomerID().Bytes(),
		PONumber:     aggregate.PONumber(),
		SupplyDate:   aggregate.SupplyDate(),
		Status:       int(aggregate.Status()),
		CreatedAt:    aggregate.CreatedAt(),
		Lines:        lines,
		Requirements: requirements,
		Jobs:         jobs,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		productID, err := kernel.UUIDFromBytes(l.ProductID[:])
		if err != nil {
			return nil, err
		}
		line, err := order.RestoreLine(productID, l.Ordered, l.Pending, l.Produced, l.Packed)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	sort.Slice(dto.Requirements, func(i, j int) bool { return dto.Requirements[i].Position < dto.Requirements[j].Position })
	requirements := make([]order.Requirement, 0, len(dto.Requirements))
	for _, r := range dto.Requirements {
		materialID, err := kernel.UUIDFromBytes(r.MaterialID[:])
		if err != nil {
			return nil, err
		}
		requirement, err := order.NewRequirement(materialID, r.Weight)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, requirement)
	}

	sort.Slice(dto.Jobs, func(i, j int) bool { return dto.Jobs[i].Position < dto.Jobs[j].Position })
	jobIDs := make([]kernel.UUID, 0, len(dto.Jobs))
	for _, j := range dto.Jobs {
		jobID, err := kernel.UUIDFromBytes(j.JobID[:])
		if err != nil {
			return nil, err
		}
		jobIDs = append(jobIDs, jobID)
	}

	return order.RestoreOrder(id, customerID, dto.PONumber, dto.SupplyDate, lines, requirements, jobIDs,
		order.Status(dto.Status), dto.CreatedAt)
}
