package order

import (
	"errors"
	"fmt"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
)

// Line is the per-product ledger of an order. Ordered is fixed at creation; pending is what is
// still open for job orders or production, produced and packed are rolled up from job orders.
type Line struct {
	productID kernel.UUID
	ordered   int
	pending   int
	produced  int
	packed    int
}

func newLine(productID kernel.UUID, ordered int) Line {
	return Line{productID: productID, ordered: ordered, pending: ordered}
}

// RestoreLine rebuilds a persisted line.
func RestoreLine(productID kernel.UUID, ordered, pending, produced, packed int) (Line, error) {
	if err := productID.Validate(); err != nil {
		return Line{}, err
	}
	if err := errors.Join(
		nonNegative("ordered", ordered),
		nonNegative("pending", pending),
		nonNegative("produced", produced),
		nonNegative("packed", packed),
	); err != nil {
		return Line{}, err
	}
	return Line{productID: productID, ordered: ordered, pending: pending, produced: produced, packed: packed}, nil
}

func (l Line) ProductID() kernel.UUID { return l.productID }
func (l Line) Ordered() int           { return l.ordered }
func (l Line) Pending() int           { return l.pending }
func (l Line) Produced() int          { return l.produced }
func (l Line) Packed() int            { return l.packed }

func (l *Line) creditProduction(delta int) {
	l.produced += delta
	l.pending = max(0, l.ordered-l.produced)
}

// Requirement is the raw-material weight (kg) the costing collaborator computed for the order.
// It is snapshotted at creation and consumed on approval.
type Requirement struct {
	materialID kernel.UUID
	weight     float64
}

func NewRequirement(materialID kernel.UUID, weight float64) (Requirement, error) {
	if err := materialID.Validate(); err != nil {
		return Requirement{}, err
	}
	if weight <= 0 {
		return Requirement{}, errs.NewValueIsInvalidErrorWithCause(
			"required weight is invalid",
			fmt.Errorf("%.3f for material %s is not greater than 0", weight, materialID),
		)
	}
	return Requirement{materialID: materialID, weight: weight}, nil
}

func (r Requirement) MaterialID() kernel.UUID { return r.materialID }
func (r Requirement) Weight() float64         { return r.weight }

func nonNegative(name string, value int) error {
	if value < 0 {
		return errs.NewValueIsInvalidErrorWithCause(name+" is invalid", fmt.Errorf("%d is negative", value))
	}
	return nil
}
