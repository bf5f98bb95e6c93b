package commands

import (
	"context"

	"textile/internal/core/domain/services"
)

// PlanWeavingCommandHandler claims a machine for a job whose preparatory work is done and starts
// weaving. The machine update is a compare-and-set, so a concurrent claim of the same machine
// fails with a StateConflictError.
type PlanWeavingCommandHandler struct {
	uowFactory JobUoWFactory
	workflow   services.JobWorkflow
}

func NewPlanWeavingCommandHandler(uowFactory JobUoWFactory) PlanWeavingCommandHandler {
	return PlanWeavingCommandHandler{
		uowFactory: uowFactory,
		workflow:   services.NewJobWorkflow(services.NewMachineAllocator()),
	}
}

func (h PlanWeavingCommandHandler) Handle(ctx context.Context, cmd PlanWeavingCommand) error {
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
	m, err := uow.MachineRepository().Get(ctx, cmd.MachineID())
	if err != nil {
		return err
	}
	records, err := uow.PreparatoryRepository().GetByJob(ctx, j.ID())
	if err != nil {
		return err
	}

	if err = h.workflow.PlanWeaving(j, m, records, cmd.Heads()); err != nil {
		return err
	}

	if err = uow.MachineRepository().Update(ctx, m); err != nil {
		return err
	}
	if err = uow.JobRepository().Update(ctx, j); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
