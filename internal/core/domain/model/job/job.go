package job

import (
	"errors"
	"fmt"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var (
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob constructor")
	ErrOrderIsRequired     = errs.NewValueIsRequiredError("order")
	ErrLinesAreRequired    = errs.NewValueIsRequiredError("planned quantities")
)

// Job is a job order: a slice of an order's meters produced in one manufacturing run.
// It borrows a machine only while weaving; the reference is nil in every other stage.
type Job struct {
	id           kernel.UUID
	orderID      kernel.UUID
	lines        []Line
	status       Status
	machineID    *kernel.UUID
	warpingID    kernel.UUID
	coveringID   kernel.UUID
	wastages     []Wastage
	cancelReason string
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewJob creates a job in the preparatory stage with zeroed produced, packed and wasted vectors.
func NewJob(id, orderID kernel.UUID, planned kernel.Quantities, warpingID, coveringID kernel.UUID, createdAt time.Time) (*Job, error) {
	j := &Job{
		status:    Preparatory,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setOrderID(orderID),
		j.setPlanned(planned),
		validateReference("warping", warpingID),
		validateReference("covering", coveringID),
	); err != nil {
		return nil, err
	}
	j.warpingID = warpingID
	j.coveringID = coveringID

	return j, nil
}

// RestoreJob rebuilds a job from persistence.
func RestoreJob(
	id, orderID kernel.UUID,
	lines []Line,
	status Status,
	machineID *kernel.UUID,
	warpingID, coveringID kernel.UUID,
	wastages []Wastage,
	cancelReason string,
	createdAt time.Time,
) (*Job, error) {
	j := &Job{
		warpingID:    warpingID,
		coveringID:   coveringID,
		cancelReason: cancelReason,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setOrderID(orderID),
		j.setLines(lines),
		j.setStatus(status, machineID),
	); err != nil {
		return nil, err
	}
	j.wastages = append([]Wastage(nil), wastages...)

	return j, nil
}

func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

func (j *Job) ID() kernel.UUID         { return j.id }
func (j *Job) OrderID() kernel.UUID    { return j.orderID }
func (j *Job) Status() Status          { return j.status }
func (j *Job) WarpingID() kernel.UUID  { return j.warpingID }
func (j *Job) CoveringID() kernel.UUID { return j.coveringID }
func (j *Job) CancelReason() string    { return j.cancelReason }
func (j *Job) CreatedAt() time.Time    { return j.createdAt }

// MachineID returns the borrowed machine, nil unless the job is weaving.
func (j *Job) MachineID() *kernel.UUID {
	if j.machineID == nil {
		return nil
	}
	id := *j.machineID
	return &id
}

func (j *Job) Lines() []Line {
	return append([]Line(nil), j.lines...)
}

func (j *Job) Wastages() []Wastage {
	return append([]Wastage(nil), j.wastages...)
}

func (j *Job) Line(productID kernel.UUID) (Line, bool) {
	if i := j.lineIndex(productID); i >= 0 {
		return j.lines[i], true
	}
	return Line{}, false
}

// Planned returns the planned vector, e.g. to give it back to the order on cancel.
func (j *Job) Planned() kernel.Quantities {
	values := make(map[kernel.UUID]int, len(j.lines))
	for _, line := range j.lines {
		values[line.productID] = line.planned
	}
	planned, _ := kernel.NewQuantities(values)
	return planned
}

// StartWeaving moves a preparatory job to weaving on machineID.
func (j *Job) StartWeaving(machineID kernel.UUID) error {
	if err := machineID.Validate(); err != nil {
		return err
	}
	newStatus, err := j.status.Advance(Weaving)
	if err != nil {
		return err
	}
	j.status = newStatus
	j.machineID = &machineID
	return nil
}

// Advance moves the job to its single legal successor. Entering weaving needs a machine and goes
// through StartWeaving; leaving weaving drops the machine reference.
func (j *Job) Advance(next Status) error {
	if j.status == Preparatory && next == Weaving {
		return errs.NewStateConflictError("job", "weaving needs a machine, plan weaving instead")
	}
	newStatus, err := j.status.Advance(next)
	if err != nil {
		return err
	}
	if j.status == Weaving {
		j.machineID = nil
	}
	j.status = newStatus
	return nil
}

// Cancel terminates a non-terminal job and drops the machine reference.
func (j *Job) Cancel(reason string) error {
	newStatus, err := j.status.Cancel()
	if err != nil {
		return err
	}
	j.status = newStatus
	j.machineID = nil
	j.cancelReason = reason
	return nil
}

// ReassignMachine moves a weaving job to another machine.
func (j *Job) ReassignMachine(machineID kernel.UUID) error {
	if err := machineID.Validate(); err != nil {
		return err
	}
	if j.status != Weaving {
		return errs.NewStateConflictError("job",
			fmt.Sprintf("machine can only be reassigned while weaving, job is %s", j.status))
	}
	j.machineID = &machineID
	return nil
}

// CreditProduction adds woven meters to productID and returns the amount actually credited.
// Output above the plan is discarded; a product outside the plan is credited nothing.
func (j *Job) CreditProduction(productID kernel.UUID, quantity int) int {
	i := j.lineIndex(productID)
	if i < 0 || quantity <= 0 {
		return 0
	}
	line := &j.lines[i]
	credited := min(quantity, line.planned-line.produced)
	line.produced += credited
	return credited
}

// RecordWastage adds scrapped meters while weaving, finishing or checking.
func (j *Job) RecordWastage(w Wastage) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if !j.status.AcceptsWastage() {
		return errs.NewStateConflictError("job",
			fmt.Sprintf("wastage cannot be recorded while %s", j.status))
	}
	i := j.lineIndex(w.productID)
	if i < 0 {
		return errs.NewValueIsInvalidErrorWithCause("product",
			fmt.Errorf("%s is not planned on job %s", w.productID, j.id))
	}
	j.lines[i].wasted += w.quantity
	j.wastages = append(j.wastages, w)
	return nil
}

// RecordPacking adds packed meters while checking or packing; packed never exceeds produced.
func (j *Job) RecordPacking(productID kernel.UUID, quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if !j.status.AcceptsPacking() {
		return errs.NewStateConflictError("job",
			fmt.Sprintf("packing cannot be recorded while %s", j.status))
	}
	i := j.lineIndex(productID)
	if i < 0 {
		return errs.NewValueIsInvalidErrorWithCause("product",
			fmt.Errorf("%s is not planned on job %s", productID, j.id))
	}
	line := &j.lines[i]
	if line.packed+quantity > line.produced {
		return errs.NewQuantityExceededError(productID, quantity, line.produced-line.packed)
	}
	line.packed += quantity
	return nil
}

func (j *Job) lineIndex(productID kernel.UUID) int {
	for i := range j.lines {
		if j.lines[i].productID.IsEqual(productID) {
			return i
		}
	}
	return -1
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return ErrOrderIsRequired
	}
	j.orderID = orderID
	return nil
}

func (j *Job) setPlanned(planned kernel.Quantities) error {
	if err := planned.Validate(); err != nil {
		return ErrLinesAreRequired
	}
	lines := make([]Line, 0, planned.Len())
	for _, productID := range planned.ProductIDs() {
		lines = append(lines, Line{productID: productID, planned: planned.Of(productID)})
	}
	j.lines = lines
	return nil
}

func (j *Job) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}
	j.lines = append([]Line(nil), lines...)
	return nil
}

func (j *Job) setStatus(status Status, machineID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if (status == Weaving) != (machineID != nil) {
		return errs.NewValueIsInvalidErrorWithCause("machine is invalid",
			fmt.Errorf("only a weaving job references a machine, job is %s", status))
	}
	j.status = status
	if machineID != nil {
		id := *machineID
		j.machineID = &id
	}
	return nil
}
