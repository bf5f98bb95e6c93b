package services_test

import (
	"testing"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/material"
	"textile/internal/core/domain/model/order"
	"textile/internal/core/domain/services"
	"textile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRequiring(t *testing.T, weights map[*material.RawMaterial]float64) *order.Order {
	t.Helper()
	var requirements []order.Requirement
	for m, w := range weights {
		r, err := order.NewRequirement(m.ID(), w)
		require.NoError(t, err)
		requirements = append(requirements, r)
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "PO-5", time.Now(),
		quantities(t, map[kernel.UUID]int{kernel.NewUUID(): 100}), requirements, time.Now())
	require.NoError(t, err)
	return o
}

func index(materials ...*material.RawMaterial) map[kernel.UUID]*material.RawMaterial {
	out := make(map[kernel.UUID]*material.RawMaterial, len(materials))
	for _, m := range materials {
		out[m.ID()] = m
	}
	return out
}

func TestInventoryLedger_ApproveOrder(t *testing.T) {
	ledger := services.NewInventoryLedger()

	t.Run("shortage on one line leaves every stock and the order unchanged", func(t *testing.T) {
		rubber, yarn := stockedMaterial(t, 50), stockedMaterial(t, 500)
		o := orderRequiring(t, map[*material.RawMaterial]float64{rubber: 60, yarn: 100})

		err := ledger.ApproveOrder(o, index(rubber, yarn), time.Now())

		var shortage *errs.InsufficientStockError
		require.ErrorAs(t, err, &shortage)
		assert.Equal(t, 60.0, shortage.Required)
		assert.Equal(t, 50.0, shortage.Available)
		assert.Equal(t, 50.0, rubber.Stock())
		assert.Equal(t, 500.0, yarn.Stock())
		assert.Equal(t, order.Open, o.Status())
	})

	t.Run("approval deducts exactly the requirement", func(t *testing.T) {
		rubber := stockedMaterial(t, 60)
		o := orderRequiring(t, map[*material.RawMaterial]float64{rubber: 60})

		require.NoError(t, ledger.ApproveOrder(o, index(rubber), time.Now()))

		assert.Zero(t, rubber.Stock())
		assert.Equal(t, 60.0, rubber.TotalConsumption())
		assert.Equal(t, order.Approved, o.Status())
		movements := rubber.Movements()
		assert.Equal(t, material.OrderApproval, movements[len(movements)-1].Kind())
	})

	t.Run("missing material is not found", func(t *testing.T) {
		rubber := stockedMaterial(t, 60)
		o := orderRequiring(t, map[*material.RawMaterial]float64{rubber: 1})

		require.ErrorIs(t, ledger.ApproveOrder(o, index(), time.Now()), errs.ErrObjectNotFound)
	})

	t.Run("approved order cannot be approved again", func(t *testing.T) {
		rubber := stockedMaterial(t, 100)
		o := orderRequiring(t, map[*material.RawMaterial]float64{rubber: 10})
		require.NoError(t, ledger.ApproveOrder(o, index(rubber), time.Now()))

		require.ErrorIs(t, ledger.ApproveOrder(o, index(rubber), time.Now()), errs.ErrStateConflict)
		assert.Equal(t, 90.0, rubber.Stock())
	})
}

func TestInventoryLedger_ReturnOrderMaterials(t *testing.T) {
	ledger := services.NewInventoryLedger()
	rubber := stockedMaterial(t, 100)
	o := orderRequiring(t, map[*material.RawMaterial]float64{rubber: 30})
	require.NoError(t, ledger.ApproveOrder(o, index(rubber), time.Now()))

	require.ErrorIs(t, ledger.ReturnOrderMaterials(o, index(rubber), time.Now()), errs.ErrStateConflict)

	require.NoError(t, o.Cancel())
	require.NoError(t, ledger.ReturnOrderMaterials(o, index(rubber), time.Now()))
	assert.Equal(t, 100.0, rubber.Stock())

	err := ledger.ReturnOrderMaterials(o, index(rubber), time.Now())
	require.ErrorIs(t, err, errs.ErrStateConflict)
	assert.Contains(t, err.Error(), "already returned")
	assert.Equal(t, 100.0, rubber.Stock())
}
