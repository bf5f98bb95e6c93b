package services

import (
	"errors"
	"fmt"
	"time"

	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/machine"
	"textile/internal/core/domain/model/order"
	"textile/internal/core/domain/model/shift"
	"textile/internal/pkg/errs"
)

// Allocation is the outcome of one shift report: meters credited to the job and order per product,
// and meters above the plan that were discarded.
type Allocation struct {
	Credited  map[kernel.UUID]int
	Discarded map[kernel.UUID]int
}

// CreditedTotal sums the credited meters over all products.
func (a Allocation) CreditedTotal() int {
	total := 0
	for _, q := range a.Credited {
		total += q
	}
	return total
}

// ProductionAllocator fans a shift report out over the heads of a machine and rolls it up into the
// job and order ledgers.
//
// Every head weaves the reported quantity, so a product on N heads receives N times the quantity.
// The job credits at most its remaining plan per product; the excess is discarded and only the
// credited meters reach the order.
type ProductionAllocator struct{}

func NewProductionAllocator() ProductionAllocator {
	return ProductionAllocator{}
}

// Allocate closes report r with quantity meters per head and credits the job running on m and
// its order o. j and o may be nil when the machine runs nothing, in which case NoActiveJobError
// is returned and nothing changes.
func (ProductionAllocator) Allocate(
	m *machine.Machine,
	j *job.Job,
	o *order.Order,
	r *shift.Report,
	quantity int,
	timer, feedback string,
	at time.Time,
) (Allocation, error) {
	if err := errors.Join(m.Validate(), r.Validate()); err != nil {
		return Allocation{}, err
	}
	running := m.RunningJobID()
	if running == nil {
		return Allocation{}, errs.NewNoActiveJobError(m.Code())
	}
	if err := errors.Join(j.Validate(), o.Validate()); err != nil {
		return Allocation{}, err
	}
	if !running.IsEqual(j.ID()) || !r.JobID().IsEqual(j.ID()) || !r.MachineID().IsEqual(m.ID()) {
		return Allocation{}, errs.NewStateConflictError("shift report",
			fmt.Sprintf("report %s does not belong to job %s running on machine %s", r.ID(), j.ID(), m.Code()))
	}
	if !j.OrderID().IsEqual(o.ID()) {
		return Allocation{}, errs.NewStateConflictError("job",
			fmt.Sprintf("job %s does not belong to order %s", j.ID(), o.ID()))
	}

	if err := r.Close(quantity, timer, feedback, at); err != nil {
		return Allocation{}, err
	}

	perProduct := m.Heads().HeadsPerProduct()
	productIDs := make([]kernel.UUID, 0, len(perProduct))
	for productID := range perProduct {
		productIDs = append(productIDs, productID)
	}
	kernel.SortUUIDs(productIDs)

	allocation := Allocation{
		Credited:  make(map[kernel.UUID]int, len(productIDs)),
		Discarded: make(map[kernel.UUID]int),
	}
	for _, productID := range productIDs {
		total := perProduct[productID] * quantity
		credited := j.CreditProduction(productID, total)
		if credited > 0 {
			if err := o.CreditProduction(productID, credited); err != nil {
				return Allocation{}, err
			}
			allocation.Credited[productID] = credited
		}
		if total > credited {
			allocation.Discarded[productID] = total - credited
		}
	}

	return allocation, nil
}
