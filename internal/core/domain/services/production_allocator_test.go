package services_test

import (
	"testing"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/shift"
	"textile/internal/core/domain/services"
	"textile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionAllocator_Allocate(t *testing.T) {
	allocator := services.NewProductionAllocator()

	t.Run("should clamp to plan and credit order with credited meters only", func(t *testing.T) {
		productA := kernel.NewUUID()
		f := newFloor(t, map[kernel.UUID]int{productA: 100}, map[kernel.UUID]int{productA: 50}, 1)
		f.weave(t, map[int]kernel.UUID{1: productA})

		first, err := allocator.Allocate(f.machine, f.job, f.order, f.report(t), 30, "8h", "", time.Now())
		require.NoError(t, err)
		second, err := allocator.Allocate(f.machine, f.job, f.order, f.report(t), 30, "8h", "", time.Now())
		require.NoError(t, err)

		assert.Equal(t, 30, first.Credited[productA])
		assert.Equal(t, 20, second.Credited[productA])
		assert.Equal(t, 10, second.Discarded[productA])

		jobLine, _ := f.job.Line(productA)
		assert.Equal(t, 50, jobLine.Produced())
		orderLine, _ := f.order.Line(productA)
		assert.Equal(t, 50, orderLine.Produced())
		assert.Equal(t, 50, orderLine.Pending())
		assert.Equal(t, orderLine.Ordered(), orderLine.Pending()+orderLine.Produced())
	})

	t.Run("should multiply quantity by heads per product", func(t *testing.T) {
		productA, productB := kernel.NewUUID(), kernel.NewUUID()
		f := newFloor(t,
			map[kernel.UUID]int{productA: 500, productB: 500},
			map[kernel.UUID]int{productA: 200, productB: 200}, 3)
		f.weave(t, map[int]kernel.UUID{1: productA, 2: productA, 3: productB})
		r := f.report(t)

		allocation, err := allocator.Allocate(f.machine, f.job, f.order, r, 40, "", "", time.Now())

		require.NoError(t, err)
		assert.Equal(t, 80, allocation.Credited[productA])
		assert.Equal(t, 40, allocation.Credited[productB])
		assert.Equal(t, 120, allocation.CreditedTotal())
		assert.Empty(t, allocation.Discarded)
		assert.Equal(t, shift.Closed, r.Status())
		assert.Equal(t, 40, r.Quantity())
	})

	t.Run("should credit nothing for a head product outside the plan", func(t *testing.T) {
		productA, stray := kernel.NewUUID(), kernel.NewUUID()
		f := newFloor(t, map[kernel.UUID]int{productA: 100}, map[kernel.UUID]int{productA: 100}, 2)
		f.weave(t, map[int]kernel.UUID{1: productA, 2: stray})

		allocation, err := allocator.Allocate(f.machine, f.job, f.order, f.report(t), 10, "", "", time.Now())

		require.NoError(t, err)
		assert.Equal(t, map[kernel.UUID]int{productA: 10}, allocation.Credited)
		assert.Equal(t, 10, allocation.Discarded[stray])
	})

	t.Run("should fail with no active job and change nothing", func(t *testing.T) {
		productA := kernel.NewUUID()
		f := newFloor(t, map[kernel.UUID]int{productA: 100}, map[kernel.UUID]int{productA: 50}, 1)
		r := f.report(t)

		_, err := allocator.Allocate(f.machine, nil, nil, r, 30, "", "", time.Now())

		require.ErrorIs(t, err, errs.ErrNoActiveJob)
		assert.Equal(t, shift.Open, r.Status())
		orderLine, _ := f.order.Line(productA)
		assert.Zero(t, orderLine.Produced())
	})

	t.Run("should refuse a report of another machine", func(t *testing.T) {
		productA := kernel.NewUUID()
		f := newFloor(t, map[kernel.UUID]int{productA: 100}, map[kernel.UUID]int{productA: 50}, 1)
		f.weave(t, map[int]kernel.UUID{1: productA})
		r, err := shift.NewReport(kernel.NewUUID(), kernel.NewUUID(), f.job.ID(), kernel.NewUUID(), time.Now(), shift.Night)
		require.NoError(t, err)

		_, err = allocator.Allocate(f.machine, f.job, f.order, r, 30, "", "", time.Now())

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, shift.Open, r.Status())
	})
}
