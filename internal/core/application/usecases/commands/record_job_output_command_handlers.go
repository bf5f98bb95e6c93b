package commands

import (
	"context"
	"time"

	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/services"
	"textile/internal/core/ports"
	"textile/internal/pkg/errs"
)

// RecordWastageCommandHandler books scrap against a job while it is weaving, finishing or checking.
type RecordWastageCommandHandler struct {
	uowFactory JobUoWFactory
	directory  ports.Directory
}

func NewRecordWastageCommandHandler(uowFactory JobUoWFactory, directory ports.Directory) RecordWastageCommandHandler {
	return RecordWastageCommandHandler{uowFactory: uowFactory, directory: directory}
}

func (h RecordWastageCommandHandler) Handle(ctx context.Context, cmd RecordWastageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	exists, err := h.directory.EmployeeExists(ctx, cmd.EmployeeID())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("employee", cmd.EmployeeID().String())
	}

	w, err := job.NewWastage(cmd.WastageID(), cmd.ProductID(), cmd.EmployeeID(), cmd.Quantity(), cmd.Reason(),
		time.Now().UTC())
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

	j, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}
	if err = j.RecordWastage(w); err != nil {
		return err
	}
	if err = uow.JobRepository().Update(ctx, j); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// RecordPackingCommandHandler books packed meters on the job and its order.
type RecordPackingCommandHandler struct {
	uowFactory JobUoWFactory
	workflow   services.JobWorkflow
}

func NewRecordPackingCommandHandler(uowFactory JobUoWFactory) RecordPackingCommandHandler {
	return RecordPackingCommandHandler{
		uowFactory: uowFactory,
		workflow:   services.NewJobWorkflow(services.NewMachineAllocator()),
	}
}

func (h RecordPackingCommandHandler) Handle(ctx context.Context, cmd RecordPackingCommand) error {
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

	j, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}
	o, err := uow.OrderRepository().Get(ctx, j.OrderID())
	if err != nil {
		return err
	}

	if err = h.workflow.RecordPacking(j, o, cmd.ProductID(), cmd.Quantity()); err != nil {
		return err
	}

	if err = uow.JobRepository().Update(ctx, j); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
