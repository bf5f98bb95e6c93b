package commands

import (
	"context"
	"time"

	"textile/internal/core/domain/model/order"
	"textile/internal/core/ports"
	"textile/internal/pkg/errs"
)

// CreateOrderCommandHandler checks the customer, snapshots the material requirements from the
// costing service and stores the order in Open status.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	directory  ports.Directory
	costing    ports.CostingService
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	directory ports.Directory,
	costing ports.CostingService,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		costing:    costing,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	exists, err := h.directory.CustomerExists(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("customer", cmd.CustomerID().String())
	}

	requirements, err := h.costing.ComputeRequirements(ctx, cmd.Quantities())
	if err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.PONumber(), cmd.SupplyDate(),
		cmd.Quantities(), requirements, time.Now().UTC())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
