package commands

import (
	"context"
	"time"

	"textile/internal/core/domain/services"
)

// CreateJobCommandHandler reserves planned meters on an Approved or InProgress order and stores
// the new job with its warping and covering records.
//
// Example:
//
//	cmd, _ := NewCreateJobCommand(kernel.NewUUID(), orderID, map[kernel.UUID]int{tapeID: 600})
//	err := handler.Handle(ctx, cmd)
//	var exceeded *errs.QuantityExceededError
//	if errors.As(err, &exceeded) {
//	    log.Printf("only %d m of %s left to plan", exceeded.Available, exceeded.ProductID)
//	}
type CreateJobCommandHandler struct {
	uowFactory JobUoWFactory
	workflow   services.JobWorkflow
}

func NewCreateJobCommandHandler(uowFactory JobUoWFactory) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
		workflow:   services.NewJobWorkflow(services.NewMachineAllocator()),
	}
}

func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) error {
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

	created, err := h.workflow.Create(o, cmd.JobID(), cmd.Planned(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.JobRepository().Add(ctx, created.Job); err != nil {
		return err
	}
	if err = uow.PreparatoryRepository().Add(ctx, created.Warping); err != nil {
		return err
	}
	if err = uow.PreparatoryRepository().Add(ctx, created.Covering); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
