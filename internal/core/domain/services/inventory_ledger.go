package services

import (
	"errors"
	"fmt"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/material"
	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/errs"
)

// InventoryLedger is the only writer of raw material stock for orders: it checks, consumes and
// restores an order's snapshotted requirements.
type InventoryLedger struct{}

func NewInventoryLedger() InventoryLedger {
	return InventoryLedger{}
}

// CheckAvailability verifies every requirement before anything is mutated. All shortfalls are
// reported together.
func (InventoryLedger) CheckAvailability(
	requirements []order.Requirement,
	materials map[kernel.UUID]*material.RawMaterial,
) error {
	var (
		ids    []kernel.UUID
		totals = make(map[kernel.UUID]float64, len(requirements))
	)
	for _, requirement := range requirements {
		if _, seen := totals[requirement.MaterialID()]; !seen {
			ids = append(ids, requirement.MaterialID())
		}
		totals[requirement.MaterialID()] += requirement.Weight()
	}

	var shortages []error
	for _, id := range ids {
		m, err := lookup(materials, id)
		if err != nil {
			return err
		}
		if err = m.CheckAvailable(totals[id]); err != nil {
			shortages = append(shortages, err)
		}
	}
	return errors.Join(shortages...)
}

// ApproveOrder consumes every requirement of an Open order and approves it. On any error neither
// the order nor a material has changed.
func (l InventoryLedger) ApproveOrder(
	o *order.Order,
	materials map[kernel.UUID]*material.RawMaterial,
	at time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, err := o.Status().Approve(); err != nil {
		return err
	}
	if err := l.CheckAvailability(o.Requirements(), materials); err != nil {
		return err
	}

	for _, requirement := range o.Requirements() {
		if err := materials[requirement.MaterialID()].Consume(o.ID(), requirement.Weight(), at); err != nil {
			return err
		}
	}
	return o.Approve()
}

// ReturnOrderMaterials puts the consumption of a cancelled order back into stock. It refuses to
// return the same order twice.
func (InventoryLedger) ReturnOrderMaterials(
	o *order.Order,
	materials map[kernel.UUID]*material.RawMaterial,
	at time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Status() != order.Cancelled {
		return errs.NewStateConflictError("order",
			fmt.Sprintf("materials can only be returned for a cancelled order, order is %s", o.Status()))
	}

	for _, requirement := range o.Requirements() {
		m, err := lookup(materials, requirement.MaterialID())
		if err != nil {
			return err
		}
		consumed, restored := orderMovements(m, o.ID())
		if consumed == 0 {
			return errs.NewStateConflictError("order",
				fmt.Sprintf("order %s never consumed %s", o.ID(), m.Name()))
		}
		if restored > 0 {
			return errs.NewStateConflictError("order",
				fmt.Sprintf("materials of order %s were already returned", o.ID()))
		}
	}

	for _, requirement := range o.Requirements() {
		if err := materials[requirement.MaterialID()].Restore(o.ID(), requirement.Weight(), at); err != nil {
			return err
		}
	}
	return nil
}

func orderMovements(m *material.RawMaterial, orderID kernel.UUID) (consumed, restored int) {
	for _, movement := range m.Movements() {
		if movement.OrderID() == nil || !movement.OrderID().IsEqual(orderID) {
			continue
		}
		switch movement.Kind() {
		case material.OrderApproval:
			consumed++
		case material.Restoration:
			restored++
		}
	}
	return consumed, restored
}

func lookup(materials map[kernel.UUID]*material.RawMaterial, id kernel.UUID) (*material.RawMaterial, error) {
	m, ok := materials[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("material", id.String())
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
