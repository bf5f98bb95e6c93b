package commands

import (
	"context"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/material"
	"textile/internal/core/domain/model/order"
	"textile/internal/core/domain/services"
)

// OrderTransitionCommandHandler applies one lifecycle transition to an order. The same handler
// type serves StartProduction, CompleteOrder and CancelOrder.
//
// Example:
//
//	cancel := NewCancelOrderCommandHandler(uowFactory)
//	cmd, _ := NewOrderCommand(orderID)
//	err := cancel.Handle(ctx, cmd) // StateConflictError once production started
type OrderTransitionCommandHandler struct {
	uowFactory OrderUoWFactory
	transition func(o *order.Order) error
}

// NewStartProductionCommandHandler moves an Approved order to InProgress.
func NewStartProductionCommandHandler(uowFactory OrderUoWFactory) OrderTransitionCommandHandler {
	return OrderTransitionCommandHandler{uowFactory: uowFactory, transition: (*order.Order).StartProduction}
}

// NewCompleteOrderCommandHandler moves an InProgress order to Completed.
func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory) OrderTransitionCommandHandler {
	return OrderTransitionCommandHandler{uowFactory: uowFactory, transition: (*order.Order).Complete}
}

// NewCancelOrderCommandHandler cancels an Open or Approved order. Consumed stock stays consumed
// until ReturnOrderMaterials is run for the order.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) OrderTransitionCommandHandler {
	return OrderTransitionCommandHandler{uowFactory: uowFactory, transition: (*order.Order).Cancel}
}

func (h OrderTransitionCommandHandler) Handle(ctx context.Context, cmd OrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = h.transition(o); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// ReturnOrderMaterialsCommandHandler puts the stock consumed by a cancelled order back, writing
// one RESTORATION movement per requirement. A second return is refused.
type ReturnOrderMaterialsCommandHandler struct {
	uowFactory LedgerUoWFactory
	ledger     services.InventoryLedger
}

func NewReturnOrderMaterialsCommandHandler(uowFactory LedgerUoWFactory) ReturnOrderMaterialsCommandHandler {
	return ReturnOrderMaterialsCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewInventoryLedger(),
	}
}

func (h ReturnOrderMaterialsCommandHandler) Handle(ctx context.Context, cmd OrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	materialIDs := make([]kernel.UUID, 0, len(o.Requirements()))
	for _, requirement := range o.Requirements() {
		materialIDs = append(materialIDs, requirement.MaterialID())
	}
	materials, err := uow.MaterialRepository().GetMany(ctx, materialIDs)
	if err != nil {
		return err
	}

	if err = h.ledger.ReturnOrderMaterials(o, materials, time.Now().UTC()); err != nil {
		return err
	}
	if err = saveMaterials(ctx, uow, materials); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// saveMaterials updates materials in id order.
func saveMaterials(ctx context.Context, uow MaterialRepoFactory, materials map[kernel.UUID]*material.RawMaterial) error {
	ids := make([]kernel.UUID, 0, len(materials))
	for id := range materials {
		ids = append(ids, id)
	}
	kernel.SortUUIDs(ids)

	repo := uow.MaterialRepository()
	for _, id := range ids {
		if err := repo.Update(ctx, materials[id]); err != nil {
			return err
		}
	}
	return nil
}
