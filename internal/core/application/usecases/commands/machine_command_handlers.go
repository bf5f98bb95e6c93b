package commands

import (
	"context"

	"textile/internal/core/domain/model/machine"
)

type RegisterMachineCommandHandler struct {
	uowFactory MachineUoWFactory
}

func NewRegisterMachineCommandHandler(uowFactory MachineUoWFactory) RegisterMachineCommandHandler {
	return RegisterMachineCommandHandler{uowFactory: uowFactory}
}

func (h RegisterMachineCommandHandler) Handle(ctx context.Context, cmd RegisterMachineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	m, err := machine.NewMachine(cmd.MachineID(), cmd.Code(), cmd.Manufacturer(), cmd.HeadCount())
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

	if err = uow.MachineRepository().Add(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// MaintenanceCommandHandler moves a machine between free and maintenance.
type MaintenanceCommandHandler struct {
	uowFactory MachineUoWFactory
	transition func(m *machine.Machine) error
}

func NewStartMaintenanceCommandHandler(uowFactory MachineUoWFactory) MaintenanceCommandHandler {
	return MaintenanceCommandHandler{uowFactory: uowFactory, transition: (*machine.Machine).StartMaintenance}
}

func NewEndMaintenanceCommandHandler(uowFactory MachineUoWFactory) MaintenanceCommandHandler {
	return MaintenanceCommandHandler{uowFactory: uowFactory, transition: (*machine.Machine).EndMaintenance}
}

func (h MaintenanceCommandHandler) Handle(ctx context.Context, cmd MachineCommand) error {
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

	m, err := uow.MachineRepository().Get(ctx, cmd.MachineID())
	if err != nil {
		return err
	}
	if err = h.transition(m); err != nil {
		return err
	}
	if err = uow.MachineRepository().Update(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
