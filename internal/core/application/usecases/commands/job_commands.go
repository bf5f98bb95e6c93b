package commands

import (
	"errors"
	"fmt"
	"strings"

	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/machine"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var ErrJobCommandIsNotConstructed = errors.New("job command must be created via its constructor")

// CreateJobCommand splits planned meters off an order into a new job order.
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	orderID kernel.UUID
	planned kernel.Quantities

	guard guard.ConstructorGuard
}

func NewCreateJobCommand(jobID, orderID kernel.UUID, planned map[kernel.UUID]int) (CreateJobCommand, error) {
	q, plannedErr := kernel.NewQuantities(planned)
	if err := errors.Join(jobID.Validate(), orderID.Validate(), plannedErr); err != nil {
		return CreateJobCommand{}, err
	}
	return CreateJobCommand{jobID: jobID, orderID: orderID, planned: q, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateJobCommand) Validate() error             { return c.guard.Validate(ErrJobCommandIsNotConstructed) }
func (c CreateJobCommand) JobID() kernel.UUID          { return c.jobID }
func (c CreateJobCommand) OrderID() kernel.UUID        { return c.orderID }
func (c CreateJobCommand) Planned() kernel.Quantities { return c.planned }

// PlanWeavingCommand puts a preparatory job on a machine with one product per head.
type PlanWeavingCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	machineID kernel.UUID
	heads     machine.HeadAssignment

	guard guard.ConstructorGuard
}

// NewPlanWeavingCommand rejects heads without a product with an IncompleteAssignmentError.
// Coverage of every machine head is checked when the machine is claimed.
func NewPlanWeavingCommand(jobID, machineID kernel.UUID, heads map[int]kernel.UUID) (PlanWeavingCommand, error) {
	assignment, headsErr := machine.NewHeadAssignment(heads)
	if err := errors.Join(jobID.Validate(), machineID.Validate(), headsErr); err != nil {
		return PlanWeavingCommand{}, err
	}
	return PlanWeavingCommand{jobID: jobID, machineID: machineID, heads: assignment, guard: guard.NewConstructorGuard()}, nil
}

func (c PlanWeavingCommand) Validate() error               { return c.guard.Validate(ErrJobCommandIsNotConstructed) }
func (c PlanWeavingCommand) JobID() kernel.UUID            { return c.jobID }
func (c PlanWeavingCommand) MachineID() kernel.UUID        { return c.machineID }
func (c PlanWeavingCommand) Heads() machine.HeadAssignment { return c.heads }

// AssignMachineCommand moves a weaving job to another machine.
type AssignMachineCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	machineID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignMachineCommand(jobID, machineID kernel.UUID) (AssignMachineCommand, error) {
	if err := errors.Join(jobID.Validate(), machineID.Validate()); err != nil {
		return AssignMachineCommand{}, err
	}
	return AssignMachineCommand{jobID: jobID, machineID: machineID, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignMachineCommand) Validate() error        { return c.guard.Validate(ErrJobCommandIsNotConstructed) }
func (c AssignMachineCommand) JobID() kernel.UUID     { return c.jobID }
func (c AssignMachineCommand) MachineID() kernel.UUID { return c.machineID }

// AdvanceJobCommand moves a job to the next stage, named as on the wire ("finishing", ...).
type AdvanceJobCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID
	next  job.Status

	guard guard.ConstructorGuard
}

func NewAdvanceJobCommand(jobID kernel.UUID, next string) (AdvanceJobCommand, error) {
	status, statusErr := job.ParseStatus(strings.ToLower(strings.TrimSpace(next)))
	if err := errors.Join(jobID.Validate(), statusErr); err != nil {
		return AdvanceJobCommand{}, err
	}
	return AdvanceJobCommand{jobID: jobID, next: status, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceJobCommand) Validate() error    { return c.guard.Validate(ErrJobCommandIsNotConstructed) }
func (c AdvanceJobCommand) JobID() kernel.UUID { return c.jobID }
func (c AdvanceJobCommand) Next() job.Status   { return c.next }

type CancelJobCommand struct { //nolint:recvcheck //using for validation
	jobID  kernel.UUID
	reason string

	guard guard.ConstructorGuard
}

func NewCancelJobCommand(jobID kernel.UUID, reason string) (CancelJobCommand, error) {
	if err := jobID.Validate(); err != nil {
		return CancelJobCommand{}, err
	}
	return CancelJobCommand{jobID: jobID, reason: strings.TrimSpace(reason), guard: guard.NewConstructorGuard()}, nil
}

func (c CancelJobCommand) Validate() error    { return c.guard.Validate(ErrJobCommandIsNotConstructed) }
func (c CancelJobCommand) JobID() kernel.UUID { return c.jobID }
func (c CancelJobCommand) Reason() string     { return c.reason }

// RecordWastageCommand books scrapped meters of one product against a job.
type RecordWastageCommand struct { //nolint:recvcheck //using for validation
	wastageID  kernel.UUID
	jobID      kernel.UUID
	productID  kernel.UUID
	employeeID kernel.UUID
	quantity   int
	reason     string

	guard guard.ConstructorGuard
}

func NewRecordWastageCommand(
	wastageID, jobID, productID, employeeID kernel.UUID,
	quantity int,
	reason string,
) (RecordWastageCommand, error) {
	if err := errors.Join(
		wastageID.Validate(),
		jobID.Validate(),
		productID.Validate(),
		employeeID.Validate(),
		positiveQuantity(quantity),
	); err != nil {
		return RecordWastageCommand{}, err
	}
	return RecordWastageCommand{
		wastageID:  wastageID,
		jobID:      jobID,
		productID:  productID,
		employeeID: employeeID,
		quantity:   quantity,
		reason:     strings.TrimSpace(reason),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordWastageCommand) Validate() error         { return c.guard.Validate(ErrJobCommandIsNotConstructed) }
func (c RecordWastageCommand) WastageID() kernel.UUID  { return c.wastageID }
func (c RecordWastageCommand) JobID() kernel.UUID      { return c.jobID }
func (c RecordWastageCommand) ProductID() kernel.UUID  { return c.productID }
func (c RecordWastageCommand) EmployeeID() kernel.UUID { return c.employeeID }
func (c RecordWastageCommand) Quantity() int           { return c.quantity }
func (c RecordWastageCommand) Reason() string          { return c.reason }

// RecordPackingCommand books packed meters of one product.
type RecordPackingCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

func NewRecordPackingCommand(jobID, productID kernel.UUID, quantity int) (RecordPackingCommand, error) {
	if err := errors.Join(jobID.Validate(), productID.Validate(), positiveQuantity(quantity)); err != nil {
		return RecordPackingCommand{}, err
	}
	return RecordPackingCommand{jobID: jobID, productID: productID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
}

func (c RecordPackingCommand) Validate() error        { return c.guard.Validate(ErrJobCommandIsNotConstructed) }
func (c RecordPackingCommand) JobID() kernel.UUID     { return c.jobID }
func (c RecordPackingCommand) ProductID() kernel.UUID { return c.productID }
func (c RecordPackingCommand) Quantity() int          { return c.quantity }

func positiveQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}
