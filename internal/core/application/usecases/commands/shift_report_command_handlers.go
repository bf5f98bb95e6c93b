package commands

import (
	"context"
	"fmt"
	"time"

	"textile/internal/core/domain/model/shift"
	"textile/internal/core/domain/services"
	"textile/internal/core/ports"
	"textile/internal/pkg/errs"
)

// OpenShiftReportCommandHandler opens a report for the job running on a machine. A machine has at
// most one report per date and shift.
type OpenShiftReportCommandHandler struct {
	uowFactory ShiftUoWFactory
	directory  ports.Directory
}

func NewOpenShiftReportCommandHandler(uowFactory ShiftUoWFactory, directory ports.Directory) OpenShiftReportCommandHandler {
	return OpenShiftReportCommandHandler{uowFactory: uowFactory, directory: directory}
}

func (h OpenShiftReportCommandHandler) Handle(ctx context.Context, cmd OpenShiftReportCommand) error {
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

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	m, err := uow.MachineRepository().Get(ctx, cmd.MachineID())
	if err != nil {
		return err
	}
	jobID := m.RunningJobID()
	if jobID == nil {
		return errs.NewNoActiveJobError(m.Code())
	}

	taken, err := uow.ShiftReportRepository().ExistsFor(ctx, m.ID(), cmd.Date(), cmd.Shift())
	if err != nil {
		return err
	}
	if taken {
		return errs.NewStateConflictError("shift report", fmt.Sprintf("machine %s already has a %s report for %s",
			m.Code(), cmd.Shift(), cmd.Date().Format(time.DateOnly)))
	}

	r, err := shift.NewReport(cmd.ReportID(), m.ID(), *jobID, cmd.EmployeeID(), cmd.Date(), cmd.Shift())
	if err != nil {
		return err
	}
	if err = uow.ShiftReportRepository().Add(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// SubmitShiftReportCommandHandler closes the open report of a machine and credits the woven meters
// to the running job and its order. Meters above the job plan are discarded and reported back in
// the Allocation.
type SubmitShiftReportCommandHandler struct {
	uowFactory ShiftUoWFactory
	allocator  services.ProductionAllocator
}

func NewSubmitShiftReportCommandHandler(uowFactory ShiftUoWFactory) SubmitShiftReportCommandHandler {
	return SubmitShiftReportCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewProductionAllocator(),
	}
}

func (h SubmitShiftReportCommandHandler) Handle(ctx context.Context, cmd SubmitShiftReportCommand) (services.Allocation, error) {
	if err := cmd.Validate(); err != nil {
		return services.Allocation{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Allocation{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	m, err := uow.MachineRepository().Get(ctx, cmd.MachineID())
	if err != nil {
		return services.Allocation{}, err
	}
	jobID := m.RunningJobID()
	if jobID == nil {
		return services.Allocation{}, errs.NewNoActiveJobError(m.Code())
	}
	r, err := uow.ShiftReportRepository().GetOpenByMachine(ctx, m.ID())
	if err != nil {
		return services.Allocation{}, err
	}

	j, err := uow.JobRepository().Get(ctx, *jobID)
	if err != nil {
		return services.Allocation{}, err
	}
	o, err := uow.OrderRepository().Get(ctx, j.OrderID())
	if err != nil {
		return services.Allocation{}, err
	}

	allocation, err := h.allocator.Allocate(m, j, o, r, cmd.Quantity(), cmd.Timer(), cmd.Feedback(), time.Now().UTC())
	if err != nil {
		return services.Allocation{}, err
	}

	if err = uow.JobRepository().Update(ctx, j); err != nil {
		return services.Allocation{}, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return services.Allocation{}, err
	}
	if err = uow.ShiftReportRepository().Update(ctx, r); err != nil {
		return services.Allocation{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return services.Allocation{}, err
	}

	return allocation, nil
}
