package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/shift"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var ErrShiftReportCommandIsNotConstructed = errors.New("shift report command must be created via its constructor")

// OpenShiftReportCommand starts the report of one machine for one date and shift.
type OpenShiftReportCommand struct { //nolint:recvcheck //using for validation
	reportID   kernel.UUID
	machineID  kernel.UUID
	employeeID kernel.UUID
	date       time.Time
	shift      shift.Shift

	guard guard.ConstructorGuard
}

func NewOpenShiftReportCommand(
	reportID, machineID, employeeID kernel.UUID,
	date time.Time,
	s string,
) (OpenShiftReportCommand, error) {
	parsed, shiftErr := shift.ParseShift(strings.ToUpper(strings.TrimSpace(s)))
	var dateErr error
	if date.IsZero() {
		dateErr = errs.NewValueIsRequiredError("date")
	}
	if err := errors.Join(reportID.Validate(), machineID.Validate(), employeeID.Validate(), dateErr, shiftErr); err != nil {
		return OpenShiftReportCommand{}, err
	}

	return OpenShiftReportCommand{
		reportID:   reportID,
		machineID:  machineID,
		employeeID: employeeID,
		date:       shift.SlotDate(date),
		shift:      parsed,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c OpenShiftReportCommand) Validate() error {
	return c.guard.Validate(ErrShiftReportCommandIsNotConstructed)
}

func (c OpenShiftReportCommand) ReportID() kernel.UUID   { return c.reportID }
func (c OpenShiftReportCommand) MachineID() kernel.UUID  { return c.machineID }
func (c OpenShiftReportCommand) EmployeeID() kernel.UUID { return c.employeeID }
func (c OpenShiftReportCommand) Date() time.Time         { return c.date }
func (c OpenShiftReportCommand) Shift() shift.Shift      { return c.shift }

// SubmitShiftReportCommand closes the open report of a machine with the meters woven per head.
type SubmitShiftReportCommand struct { //nolint:recvcheck //using for validation
	machineID kernel.UUID
	quantity  int
	timer     string
	feedback  string

	guard guard.ConstructorGuard
}

func NewSubmitShiftReportCommand(machineID kernel.UUID, quantity int, timer, feedback string) (SubmitShiftReportCommand, error) {
	var quantityErr error
	if quantity < 0 {
		quantityErr = errs.NewValueIsOutOfRangeErrorWithCause("quantity", quantity, 0, nil,
			fmt.Errorf("%d is negative", quantity))
	}
	if err := errors.Join(machineID.Validate(), quantityErr); err != nil {
		return SubmitShiftReportCommand{}, err
	}

	return SubmitShiftReportCommand{
		machineID: machineID,
		quantity:  quantity,
		timer:     strings.TrimSpace(timer),
		feedback:  strings.TrimSpace(feedback),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitShiftReportCommand) Validate() error {
	return c.guard.Validate(ErrShiftReportCommandIsNotConstructed)
}

func (c SubmitShiftReportCommand) MachineID() kernel.UUID { return c.machineID }
func (c SubmitShiftReportCommand) Quantity() int          { return c.quantity }
func (c SubmitShiftReportCommand) Timer() string          { return c.timer }
func (c SubmitShiftReportCommand) Feedback() string       { return c.feedback }
