package services_test

import (
	"testing"
	"time"

	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/machine"
	"textile/internal/core/domain/model/material"
	"textile/internal/core/domain/model/order"
	"textile/internal/core/domain/model/preparatory"
	"textile/internal/core/domain/model/shift"
	"textile/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

type floor struct {
	workflow services.JobWorkflow
	order    *order.Order
	job      *job.Job
	records  []*preparatory.Process
	machine  *machine.Machine
}

func quantities(t *testing.T, values map[kernel.UUID]int) kernel.Quantities {
	t.Helper()
	q, err := kernel.NewQuantities(values)
	require.NoError(t, err)
	return q
}

func approvedOrder(t *testing.T, ordered map[kernel.UUID]int) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "PO-77", time.Now().AddDate(0, 1, 0),
		quantities(t, ordered), nil, time.Now())
	require.NoError(t, err)
	require.NoError(t, o.Approve())
	return o
}

func newMachine(t *testing.T, code string, headCount int) *machine.Machine {
	t.Helper()
	m, err := machine.NewMachine(kernel.NewUUID(), code, "Muller", headCount)
	require.NoError(t, err)
	return m
}

func heads(t *testing.T, products map[int]kernel.UUID) machine.HeadAssignment {
	t.Helper()
	a, err := machine.NewHeadAssignment(products)
	require.NoError(t, err)
	return a
}

func completeRecords(t *testing.T, records ...*preparatory.Process) {
	t.Helper()
	for _, r := range records {
		require.NoError(t, r.Start())
		require.NoError(t, r.Complete(time.Now()))
	}
}

// newFloor creates an approved order, one job planned from it with completed preparatory records,
// and a free machine with headCount heads.
func newFloor(t *testing.T, ordered, planned map[kernel.UUID]int, headCount int) *floor {
	t.Helper()
	f := &floor{
		workflow: services.NewJobWorkflow(services.NewMachineAllocator()),
		order:    approvedOrder(t, ordered),
		machine:  newMachine(t, "NF-01", headCount),
	}
	created, err := f.workflow.Create(f.order, kernel.NewUUID(), quantities(t, planned), time.Now())
	require.NoError(t, err)
	f.job = created.Job
	f.records = []*preparatory.Process{created.Warping, created.Covering}
	completeRecords(t, f.records...)
	return f
}

func (f *floor) weave(t *testing.T, assignment map[int]kernel.UUID) {
	t.Helper()
	require.NoError(t, f.workflow.PlanWeaving(f.job, f.machine, f.records, heads(t, assignment)))
}

func (f *floor) report(t *testing.T) *shift.Report {
	t.Helper()
	r, err := shift.NewReport(kernel.NewUUID(), f.machine.ID(), f.job.ID(), kernel.NewUUID(), time.Now(), shift.Day)
	require.NoError(t, err)
	return r
}

func stockedMaterial(t *testing.T, stock float64) *material.RawMaterial {
	t.Helper()
	m, err := material.NewRawMaterial(kernel.NewUUID(), "Rubber 90", "rubber", 0)
	require.NoError(t, err)
	if stock > 0 {
		require.NoError(t, m.Receive(stock, "GRN", time.Now()))
	}
	return m
}
