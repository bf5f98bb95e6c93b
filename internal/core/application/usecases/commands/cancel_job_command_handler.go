package commands

import (
	"context"

	"textile/internal/core/domain/model/machine"
	"textile/internal/core/domain/services"
)

// CancelJobCommandHandler stops a job, frees its machine, cancels unfinished preparatory work and
// gives the planned meters back to the order's pending quantities.
type CancelJobCommandHandler struct {
	uowFactory JobUoWFactory
	workflow   services.JobWorkflow
}

func NewCancelJobCommandHandler(uowFactory JobUoWFactory) CancelJobCommandHandler {
	return CancelJobCommandHandler{
		uowFactory: uowFactory,
		workflow:   services.NewJobWorkflow(services.NewMachineAllocator()),
	}
}

func (h CancelJobCommandHandler) Handle(ctx context.Context, cmd CancelJobCommand) error {
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
	records, err := uow.PreparatoryRepository().GetByJob(ctx, j.ID())
	if err != nil {
		return err
	}

	if err = h.workflow.Cancel(j, m, o, records, siblings, cmd.Reason()); err != nil {
		return err
	}

	if m != nil {
		if err = uow.MachineRepository().Update(ctx, m); err != nil {
			return err
		}
	}
	for _, record := range records {
		if err = uow.PreparatoryRepository().Update(ctx, record); err != nil {
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
