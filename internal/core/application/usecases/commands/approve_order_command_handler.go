package commands

import (
	"context"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/services"
)

// ApproveOrderCommandHandler consumes the stock an order needs and approves it, all or nothing.
// The materials are loaded with row locks, so two approvals competing for the same stock are
// serialised by the database.
type ApproveOrderCommandHandler struct {
	uowFactory LedgerUoWFactory
	ledger     services.InventoryLedger
}

func NewApproveOrderCommandHandler(uowFactory LedgerUoWFactory) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewInventoryLedger(),
	}
}

func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd OrderCommand) error {
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

	if err = h.ledger.ApproveOrder(o, materials, time.Now().UTC()); err != nil {
		return err
	}

	if err = saveMaterials(ctx, uow, materials); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
