package services_test

import (
	"testing"
	"time"

	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/machine"
	"textile/internal/core/domain/model/order"
	"textile/internal/core/domain/model/preparatory"
	"textile/internal/core/domain/services"
	"textile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func advance(t *testing.T, f *floor, siblings []*job.Job, statuses ...job.Status) {
	t.Helper()
	for _, next := range statuses {
		require.NoError(t, f.workflow.Advance(f.job, f.machine, f.order, siblings, next))
	}
}

func TestJobWorkflow_Create(t *testing.T) {
	productA, productB := kernel.NewUUID(), kernel.NewUUID()
	workflow := services.NewJobWorkflow(services.NewMachineAllocator())

	t.Run("should reserve pending and seed preparatory records", func(t *testing.T) {
		o := approvedOrder(t, map[kernel.UUID]int{productA: 100, productB: 40})

		created, err := workflow.Create(o, kernel.NewUUID(), quantities(t, map[kernel.UUID]int{productA: 60}), time.Now())

		require.NoError(t, err)
		line, _ := o.Line(productA)
		assert.Equal(t, 40, line.Pending())
		assert.Equal(t, order.InProgress, o.Status())
		assert.Equal(t, []kernel.UUID{created.Job.ID()}, o.JobIDs())
		assert.Equal(t, preparatory.Warping, created.Warping.Kind())
		assert.Equal(t, preparatory.Covering, created.Covering.Kind())
		assert.True(t, created.Job.WarpingID().IsEqual(created.Warping.ID()))
		assert.True(t, created.Job.CoveringID().IsEqual(created.Covering.ID()))
		assert.Equal(t, 60, created.Covering.Planned().Of(productA))
	})

	t.Run("should refuse more than pending and leave order unchanged", func(t *testing.T) {
		o := approvedOrder(t, map[kernel.UUID]int{productA: 100})

		_, err := workflow.Create(o, kernel.NewUUID(), quantities(t, map[kernel.UUID]int{productA: 101}), time.Now())

		var exceeded *errs.QuantityExceededError
		require.ErrorAs(t, err, &exceeded)
		assert.Equal(t, 100, exceeded.Available)
		assert.Equal(t, order.Approved, o.Status())
		assert.Empty(t, o.JobIDs())
	})

	t.Run("should refuse open order", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "", time.Now(),
			quantities(t, map[kernel.UUID]int{productA: 10}), nil, time.Now())
		require.NoError(t, err)

		_, err = workflow.Create(o, kernel.NewUUID(), quantities(t, map[kernel.UUID]int{productA: 5}), time.Now())

		require.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestJobWorkflow_PlanWeaving(t *testing.T) {
	productA := kernel.NewUUID()

	t.Run("should refuse before preparatory records complete", func(t *testing.T) {
		workflow := services.NewJobWorkflow(services.NewMachineAllocator())
		o := approvedOrder(t, map[kernel.UUID]int{productA: 10})
		created, err := workflow.Create(o, kernel.NewUUID(), quantities(t, map[kernel.UUID]int{productA: 10}), time.Now())
		require.NoError(t, err)
		completeRecords(t, created.Warping)
		m := newMachine(t, "NF-09", 1)

		err = workflow.PlanWeaving(created.Job, m, []*preparatory.Process{created.Warping, created.Covering},
			heads(t, map[int]kernel.UUID{1: productA}))

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Contains(t, err.Error(), "covering")
		assert.Equal(t, machine.Free, m.Status())
		assert.Equal(t, job.Preparatory, created.Job.Status())
	})

	t.Run("should refuse assignment that skips a head", func(t *testing.T) {
		f := newFloor(t, map[kernel.UUID]int{productA: 10}, map[kernel.UUID]int{productA: 10}, 3)

		err := f.workflow.PlanWeaving(f.job, f.machine, f.records, heads(t, map[int]kernel.UUID{1: productA, 3: productA}))

		var incomplete *errs.IncompleteAssignmentError
		require.ErrorAs(t, err, &incomplete)
		assert.Equal(t, []int{2}, incomplete.Heads)
		assert.Equal(t, machine.Free, f.machine.Status())
	})

	t.Run("should refuse job that is already weaving", func(t *testing.T) {
		f := newFloor(t, map[kernel.UUID]int{productA: 10}, map[kernel.UUID]int{productA: 10}, 1)
		f.weave(t, map[int]kernel.UUID{1: productA})

		err := f.workflow.PlanWeaving(f.job, newMachine(t, "NF-10", 1), f.records, heads(t, map[int]kernel.UUID{1: productA}))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestJobWorkflow_Advance(t *testing.T) {
	productA := kernel.NewUUID()

	t.Run("weaving to finishing releases machine", func(t *testing.T) {
		f := newFloor(t, map[kernel.UUID]int{productA: 10}, map[kernel.UUID]int{productA: 10}, 1)
		f.weave(t, map[int]kernel.UUID{1: productA})

		advance(t, f, nil, job.Finishing)

		assert.Equal(t, machine.Free, f.machine.Status())
		assert.Nil(t, f.machine.RunningJobID())
		assert.Nil(t, f.job.MachineID())
	})

	t.Run("skipping a stage fails and keeps status", func(t *testing.T) {
		f := newFloor(t, map[kernel.UUID]int{productA: 10}, map[kernel.UUID]int{productA: 10}, 1)
		f.weave(t, map[int]kernel.UUID{1: productA})
		advance(t, f, nil, job.Finishing, job.Checking)

		err := f.workflow.Advance(f.job, nil, f.order, nil, job.Completed)

		require.ErrorIs(t, err, errs.ErrStateConflict)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, job.Checking, f.job.Status())
	})

	t.Run("last completed job completes order", func(t *testing.T) {
		f := newFloor(t, map[kernel.UUID]int{productA: 10}, map[kernel.UUID]int{productA: 10}, 1)
		f.weave(t, map[int]kernel.UUID{1: productA})

		advance(t, f, nil, job.Finishing, job.Checking, job.Packing, job.Completed)

		assert.Equal(t, order.Completed, f.order.Status())
	})

	t.Run("running sibling keeps order in progress", func(t *testing.T) {
		f := newFloor(t, map[kernel.UUID]int{productA: 20}, map[kernel.UUID]int{productA: 10}, 1)
		sibling, err := f.workflow.Create(f.order, kernel.NewUUID(), quantities(t, map[kernel.UUID]int{productA: 10}), time.Now())
		require.NoError(t, err)
		f.weave(t, map[int]kernel.UUID{1: productA})

		advance(t, f, []*job.Job{sibling.Job}, job.Finishing, job.Checking, job.Packing, job.Completed)

		assert.Equal(t, order.InProgress, f.order.Status())
	})
}

func TestJobWorkflow_Cancel(t *testing.T) {
	productA := kernel.NewUUID()

	t.Run("weaving job frees machine and restores pending", func(t *testing.T) {
		f := newFloor(t, map[kernel.UUID]int{productA: 100}, map[kernel.UUID]int{productA: 60}, 1)
		f.weave(t, map[int]kernel.UUID{1: productA})

		require.NoError(t, f.workflow.Cancel(f.job, f.machine, f.order, f.records, nil, "loom damaged"))

		assert.Equal(t, job.Cancelled, f.job.Status())
		assert.Equal(t, "loom damaged", f.job.CancelReason())
		assert.Equal(t, machine.Free, f.machine.Status())
		assert.Nil(t, f.machine.RunningJobID())
		line, _ := f.order.Line(productA)
		assert.Equal(t, 100, line.Pending())
		assert.Equal(t, order.Approved, f.order.Status())
	})

	t.Run("preparatory job cancels unfinished records", func(t *testing.T) {
		workflow := services.NewJobWorkflow(services.NewMachineAllocator())
		o := approvedOrder(t, map[kernel.UUID]int{productA: 10})
		created, err := workflow.Create(o, kernel.NewUUID(), quantities(t, map[kernel.UUID]int{productA: 10}), time.Now())
		require.NoError(t, err)
		completeRecords(t, created.Warping)

		require.NoError(t, workflow.Cancel(created.Job, nil, o,
			[]*preparatory.Process{created.Warping, created.Covering}, nil, "customer change"))

		assert.Equal(t, preparatory.Completed, created.Warping.Status())
		assert.Equal(t, preparatory.Cancelled, created.Covering.Status())
	})

	t.Run("completed job cannot be cancelled", func(t *testing.T) {
		f := newFloor(t, map[kernel.UUID]int{productA: 10}, map[kernel.UUID]int{productA: 10}, 1)
		f.weave(t, map[int]kernel.UUID{1: productA})
		advance(t, f, nil, job.Finishing, job.Checking, job.Packing, job.Completed)

		err := f.workflow.Cancel(f.job, nil, f.order, f.records, nil, "late")

		require.ErrorIs(t, err, errs.ErrStateConflict)
		line, _ := f.order.Line(productA)
		assert.Zero(t, line.Pending())
	})
}

func TestJobWorkflow_RecordPacking(t *testing.T) {
	productA := kernel.NewUUID()
	f := newFloor(t, map[kernel.UUID]int{productA: 50}, map[kernel.UUID]int{productA: 50}, 1)
	f.weave(t, map[int]kernel.UUID{1: productA})
	_, err := services.NewProductionAllocator().Allocate(f.machine, f.job, f.order, f.report(t), 40, "", "", time.Now())
	require.NoError(t, err)
	advance(t, f, nil, job.Finishing, job.Checking)

	require.NoError(t, f.workflow.RecordPacking(f.job, f.order, productA, 25))
	err = f.workflow.RecordPacking(f.job, f.order, productA, 20)

	require.ErrorIs(t, err, errs.ErrQuantityExceeded)
	jobLine, _ := f.job.Line(productA)
	orderLine, _ := f.order.Line(productA)
	assert.Equal(t, 25, jobLine.Packed())
	assert.Equal(t, 25, orderLine.Packed())
}
