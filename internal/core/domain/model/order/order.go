package order

import (
	"errors"
	"fmt"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	ErrCustomerIsRequired    = errs.NewValueIsRequiredError("customer")
	ErrLinesAreRequired      = errs.NewValueIsRequiredError("order lines")
)

// Order is the customer's request for meters of one or more products. It owns the per-product
// ledger (ordered, pending, produced, packed), the raw-material requirements snapshotted at
// creation and the references to the job orders split off it.
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	poNumber     string
	supplyDate   time.Time
	lines        []Line
	requirements []Requirement
	jobIDs       []kernel.UUID
	status       Status
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an Open order with pending = ordered and nothing produced or packed.
func NewOrder(
	id, customerID kernel.UUID,
	poNumber string,
	supplyDate time.Time,
	ordered kernel.Quantities,
	requirements []Requirement,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		poNumber:   poNumber,
		supplyDate: supplyDate,
		status:     Open,
		createdAt:  createdAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setOrdered(ordered),
		o.setRequirements(requirements),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence.
func RestoreOrder(
	id, customerID kernel.UUID,
	poNumber string,
	supplyDate time.Time,
	lines []Line,
	requirements []Requirement,
	jobIDs []kernel.UUID,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		poNumber:   poNumber,
		supplyDate: supplyDate,
		createdAt:  createdAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setLines(lines),
		o.setRequirements(requirements),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}
	o.jobIDs = append([]kernel.UUID(nil), jobIDs...)

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID         { return o.id }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) PONumber() string        { return o.poNumber }
func (o *Order) SupplyDate() time.Time   { return o.supplyDate }
func (o *Order) Status() Status          { return o.status }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }

func (o *Order) Lines() []Line {
	return append([]Line(nil), o.lines...)
}

func (o *Order) Requirements() []Requirement {
	return append([]Requirement(nil), o.requirements...)
}

func (o *Order) JobIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), o.jobIDs...)
}

// Line returns the ledger line for productID.
func (o *Order) Line(productID kernel.UUID) (Line, bool) {
	if i := o.lineIndex(productID); i >= 0 {
		return o.lines[i], true
	}
	return Line{}, false
}

// Approve moves an Open order to Approved. Stock consumption is done by the inventory ledger
// in the same unit of work.
func (o *Order) Approve() error {
	return o.transition(o.status.Approve)
}

func (o *Order) StartProduction() error {
	return o.transition(o.status.StartProduction)
}

func (o *Order) Complete() error {
	return o.transition(o.status.Complete)
}

// Cancel is legal from Open or Approved. Consumed raw materials are not restored here.
func (o *Order) Cancel() error {
	return o.transition(o.status.Cancel)
}

func (o *Order) RevertToApproved() error {
	return o.transition(o.status.RevertToApproved)
}

// ReserveForJob splits planned meters off the pending vector for a new job order. Every product
// is checked before anything changes, then the job is referenced and the order moves to InProgress.
func (o *Order) ReserveForJob(jobID kernel.UUID, planned kernel.Quantities) error {
	if err := errors.Join(jobID.Validate(), planned.Validate()); err != nil {
		return err
	}
	if !o.status.AcceptsJobs() {
		return errs.NewStateConflictError("order",
			fmt.Sprintf("%s order does not accept job orders", o.status))
	}

	for _, productID := range planned.ProductIDs() {
		requested := planned.Of(productID)
		line, ok := o.Line(productID)
		if !ok {
			return errs.NewQuantityExceededError(productID, requested, 0)
		}
		if requested > line.pending {
			return errs.NewQuantityExceededError(productID, requested, line.pending)
		}
	}

	newStatus, err := o.status.ContinueProduction()
	if err != nil {
		return err
	}
	for _, productID := range planned.ProductIDs() {
		o.lines[o.lineIndex(productID)].pending -= planned.Of(productID)
	}
	o.jobIDs = append(o.jobIDs, jobID)
	o.status = newStatus
	return nil
}

// RestorePending gives a cancelled job's planned meters back to the pending vector. A product
// missing from the ledger is added back as a line of its own.
func (o *Order) RestorePending(planned kernel.Quantities) error {
	if err := planned.Validate(); err != nil {
		return err
	}
	for _, productID := range planned.ProductIDs() {
		if i := o.lineIndex(productID); i >= 0 {
			o.lines[i].pending += planned.Of(productID)
			continue
		}
		o.lines = append(o.lines, Line{productID: productID, pending: planned.Of(productID)})
	}
	return nil
}

// CreditProduction adds meters credited to a job order and recomputes pending as
// max(0, ordered - produced).
func (o *Order) CreditProduction(productID kernel.UUID, delta int) error {
	if delta < 0 {
		return errs.NewValueIsOutOfRangeError("produced delta", delta, 0, "unbounded")
	}
	i := o.lineIndex(productID)
	if i < 0 {
		return errs.NewValueIsInvalidErrorWithCause("product",
			fmt.Errorf("%s is not part of order %s", productID, o.id))
	}
	o.lines[i].creditProduction(delta)
	return nil
}

// CreditPacking adds packed meters; packed may not exceed produced.
func (o *Order) CreditPacking(productID kernel.UUID, quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i := o.lineIndex(productID)
	if i < 0 {
		return errs.NewValueIsInvalidErrorWithCause("product",
			fmt.Errorf("%s is not part of order %s", productID, o.id))
	}
	line := &o.lines[i]
	if line.packed+quantity > line.produced {
		return errs.NewQuantityExceededError(productID, quantity, line.produced-line.packed)
	}
	line.packed += quantity
	return nil
}

func (o *Order) transition(next func() (Status, error)) error {
	newStatus, err := next()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

func (o *Order) lineIndex(productID kernel.UUID) int {
	for i := range o.lines {
		if o.lines[i].productID.IsEqual(productID) {
			return i
		}
	}
	return -1
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return ErrCustomerIsRequired
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setOrdered(ordered kernel.Quantities) error {
	if err := ordered.Validate(); err != nil {
		return ErrLinesAreRequired
	}
	lines := make([]Line, 0, ordered.Len())
	for _, productID := range ordered.ProductIDs() {
		lines = append(lines, newLine(productID, ordered.Of(productID)))
	}
	o.lines = lines
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}
	for _, line := range lines {
		if err := line.productID.Validate(); err != nil {
			return err
		}
	}
	o.lines = append([]Line(nil), lines...)
	return nil
}

func (o *Order) setRequirements(requirements []Requirement) error {
	for _, r := range requirements {
		if err := r.materialID.Validate(); err != nil {
			return err
		}
	}
	o.requirements = append([]Requirement(nil), requirements...)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
