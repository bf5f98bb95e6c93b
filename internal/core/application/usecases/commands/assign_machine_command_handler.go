package commands

import (
	"context"
	"fmt"

	"textile/internal/core/domain/services"
	"textile/internal/pkg/errs"
)

// AssignMachineCommandHandler moves a weaving job with its head assignment to another machine.
// The old machine is written before the new one: a job may be referenced by one running machine
// row at a time.
type AssignMachineCommandHandler struct {
	uowFactory JobUoWFactory
	allocator  services.MachineAllocator
}

func NewAssignMachineCommandHandler(uowFactory JobUoWFactory) AssignMachineCommandHandler {
	return AssignMachineCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewMachineAllocator(),
	}
}

func (h AssignMachineCommandHandler) Handle(ctx context.Context, cmd AssignMachineCommand) error {
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
	currentID := j.MachineID()
	if currentID == nil {
		return errs.NewStateConflictError("job",
			fmt.Sprintf("job %s is %s, only a weaving job can be reassigned", j.ID(), j.Status()))
	}
	if currentID.IsEqual(cmd.MachineID()) {
		return errs.NewStateConflictError("job",
			fmt.Sprintf("job %s already runs on machine %s", j.ID(), cmd.MachineID()))
	}

	current, err := uow.MachineRepository().Get(ctx, *currentID)
	if err != nil {
		return err
	}
	target, err := uow.MachineRepository().Get(ctx, cmd.MachineID())
	if err != nil {
		return err
	}

	if err = h.allocator.Reassign(j, current, target); err != nil {
		return err
	}

	if err = uow.MachineRepository().Update(ctx, current); err != nil {
		return err
	}
	if err = uow.MachineRepository().Update(ctx, target); err != nil {
		return err
	}
	if err = uow.JobRepository().Update(ctx, j); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
