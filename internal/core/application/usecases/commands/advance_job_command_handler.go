package commands

import (
	"context"

	"textile/internal/core/domain/model/machine"
	"textile/internal/core/domain/services"
)

// AdvanceJobCommandHandler moves a job to its next stage. Leaving weaving frees the machine;
// completing the last open job of an order completes the order.
type AdvanceJobCommandHandler struct {
	uowFactory JobUoWFactory
	workflow   services.JobWorkflow
}

func NewAdvanceJobCommandHandler(uowFactory JobUoWFactory) AdvanceJobCommandHandler {
	return AdvanceJobCommandHandler{
		uowFactory: uowFactory,
		workflow:   services.NewJobWorkflow(services.NewMachineAllocator()),
	}
}

func (h AdvanceJobCommandHandler) Handle(ctx context.Context, cmd AdvanceJobCommand) error {
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
	var m *machine.Machine
	if machineID := j.MachineID(); machineID != nil {
		if m, err = uow.MachineRepository().Get(ctx, *machineID); err != nil {
			return err
		}
	}
	o, err := uow.OrderRepository().Get(ctx, j.OrderID())
	if err != nil {
		return err
	}
	siblings, err := uow.JobRepository().GetByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	if err = h.workflow.Advance(j, m, o, siblings, cmd.Next()); err != nil {
		return err
	}

	if m != nil {
		if err = uow.MachineRepository().Update(ctx, m); err != nil {
			return err
		}
	}
	if err = uow.JobRepository().Update(ctx, j); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
