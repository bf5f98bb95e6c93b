package job

import (
	"errors"
	"fmt"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

// Line is the per-product ledger of a job order. Produced never exceeds planned.
type Line struct {
	productID kernel.UUID
	planned   int
	produced  int
	packed    int
	wasted    int
}

// RestoreLine rebuilds a persisted line.
func RestoreLine(productID kernel.UUID, planned, produced, packed, wasted int) (Line, error) {
	if err := productID.Validate(); err != nil {
		return Line{}, err
	}
	if planned <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("planned is invalid",
			fmt.Errorf("%d is not greater than 0", planned))
	}
	if produced < 0 || produced > planned {
		return Line{}, errs.NewValueIsOutOfRangeError("produced", produced, 0, planned)
	}
	if packed < 0 || packed > produced {
		return Line{}, errs.NewValueIsOutOfRangeError("packed", packed, 0, produced)
	}
	if wasted < 0 {
		return Line{}, errs.NewValueIsOutOfRangeError("wasted", wasted, 0, "unbounded")
	}
	return Line{productID: productID, planned: planned, produced: produced, packed: packed, wasted: wasted}, nil
}

func (l Line) ProductID() kernel.UUID { return l.productID }
func (l Line) Planned() int           { return l.planned }
func (l Line) Produced() int          { return l.produced }
func (l Line) Packed() int            { return l.packed }
func (l Line) Wasted() int            { return l.wasted }

// Remaining is what still has to be woven: max(0, planned - produced - wasted).
func (l Line) Remaining() int {
	return max(0, l.planned-l.produced-l.wasted)
}

var ErrWastageIsNotConstructed = errors.New("Wastage must be created via NewWastage constructor")

// Wastage is the audit record of meters scrapped on a job order.
type Wastage struct {
	id         kernel.UUID
	productID  kernel.UUID
	employeeID kernel.UUID
	quantity   int
	reason     string
	recordedAt time.Time

	guard guard.ConstructorGuard
}

func NewWastage(
	id, productID, employeeID kernel.UUID,
	quantity int,
	reason string,
	recordedAt time.Time,
) (Wastage, error) {
	if err := errors.Join(
		id.Validate(),
		validateReference("product", productID),
		validateReference("employee", employeeID),
	); err != nil {
		return Wastage{}, err
	}
	if quantity <= 0 {
		return Wastage{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Wastage{
		id:         id,
		productID:  productID,
		employeeID: employeeID,
		quantity:   quantity,
		reason:     reason,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (w Wastage) Validate() error {
	return w.guard.Validate(ErrWastageIsNotConstructed)
}

func (w Wastage) ID() kernel.UUID         { return w.id }
func (w Wastage) ProductID() kernel.UUID  { return w.productID }
func (w Wastage) EmployeeID() kernel.UUID { return w.employeeID }
func (w Wastage) Quantity() int           { return w.quantity }
func (w Wastage) Reason() string          { return w.reason }
func (w Wastage) RecordedAt() time.Time   { return w.recordedAt }

func validateReference(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
