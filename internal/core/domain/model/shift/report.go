package shift

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var ErrReportIsNotConstructed = errors.New("Report must be created via NewReport constructor")

// Report is the production submission of one machine for one shift. At most one report exists per
// machine, date and shift. Closing it is one-way and credits the reported meters to the running job.
type Report struct {
	id         kernel.UUID
	machineID  kernel.UUID
	jobID      kernel.UUID
	employeeID kernel.UUID
	date       time.Time
	shift      Shift
	quantity   int
	timer      string
	feedback   string
	status     Status
	closedAt   *time.Time

	guard guard.ConstructorGuard
}

// NewReport opens a report for the job currently running on machineID.
func NewReport(id, machineID, jobID, employeeID kernel.UUID, date time.Time, shift Shift) (*Report, error) {
	r := &Report{
		status: Open,
		guard:  guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		r.setReferences(id, machineID, jobID, employeeID),
		r.setSlot(date, shift),
	); err != nil {
		return nil, err
	}
	return r, nil
}

func RestoreReport(
	id, machineID, jobID, employeeID kernel.UUID,
	date time.Time,
	shift Shift,
	quantity int,
	timer, feedback string,
	status Status,
	closedAt *time.Time,
) (*Report, error) {
	r := &Report{
		quantity: quantity,
		timer:    timer,
		feedback: feedback,
		guard:    guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		r.setReferences(id, machineID, jobID, employeeID),
		r.setSlot(date, shift),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	if (status == Closed) != (closedAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("closed at is invalid",
			fmt.Errorf("only a closed report has a closing time, report is %s", status))
	}
	r.status = status
	r.closedAt = closedAt
	return r, nil
}

func (r *Report) Validate() error {
	if r == nil {
		return ErrReportIsNotConstructed
	}
	return r.guard.Validate(ErrReportIsNotConstructed)
}

func (r *Report) ID() kernel.UUID         { return r.id }
func (r *Report) MachineID() kernel.UUID  { return r.machineID }
func (r *Report) JobID() kernel.UUID      { return r.jobID }
func (r *Report) EmployeeID() kernel.UUID { return r.employeeID }
func (r *Report) Date() time.Time         { return r.date }
func (r *Report) Shift() Shift            { return r.shift }
func (r *Report) Quantity() int           { return r.quantity }
func (r *Report) Timer() string           { return r.timer }
func (r *Report) Feedback() string        { return r.feedback }
func (r *Report) Status() Status          { return r.status }
func (r *Report) ClosedAt() *time.Time    { return r.closedAt }

// Close records the reported meters per head and closes the report.
func (r *Report) Close(quantity int, timer, feedback string, at time.Time) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	if r.status != Open {
		return errs.NewStateConflictError("shift report",
			fmt.Sprintf("report %s is already %s", r.id, r.status))
	}
	r.quantity = quantity
	r.timer = strings.TrimSpace(timer)
	r.feedback = strings.TrimSpace(feedback)
	r.status = Closed
	r.closedAt = &at
	return nil
}

func (r *Report) setReferences(id, machineID, jobID, employeeID kernel.UUID) error {
	var problems []error
	for name, ref := range map[string]kernel.UUID{
		"report": id, "machine": machineID, "job": jobID, "employee": employeeID,
	} {
		if err := ref.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsRequiredErrorWithCause(name, err))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	r.id = id
	r.machineID = machineID
	r.jobID = jobID
	r.employeeID = employeeID
	return nil
}

func (r *Report) setSlot(date time.Time, shift Shift) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	if err := shift.Validate(); err != nil {
		return err
	}
	r.date = SlotDate(date)
	r.shift = shift
	return nil
}

// Day0 truncates t to the start of its UTC calendar day, the granularity of a shift slot.
func SlotDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
