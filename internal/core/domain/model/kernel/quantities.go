package kernel

import (
	"errors"
	"fmt"

	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var (
	ErrQuantitiesAreNotConstructed = errors.New("Quantities must be created via NewQuantities constructor")
	ErrQuantitiesAreEmpty          = errs.NewValueIsRequiredError("product quantities")
)

// Quantities is an immutable per-product vector of meters: an order's ordered lines, a job's plan,
// or the plan seeded into a warping/covering record. It always holds at least one product and
// every quantity is strictly positive.
type Quantities struct {
	values map[UUID]int
	guard  guard.ConstructorGuard
}

// NewQuantities validates and copies values.
func NewQuantities(values map[UUID]int) (Quantities, error) {
	if len(values) == 0 {
		return Quantities{}, ErrQuantitiesAreEmpty
	}

	copied := make(map[UUID]int, len(values))
	var problems []error
	for productID, quantity := range values {
		if err := productID.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("product", err))
			continue
		}
		if quantity <= 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"quantity is invalid",
				fmt.Errorf("%d for product %s is not greater than 0", quantity, productID),
			))
			continue
		}
		copied[productID] = quantity
	}
	if err := errors.Join(problems...); err != nil {
		return Quantities{}, err
	}

	return Quantities{values: copied, guard: guard.NewConstructorGuard()}, nil
}

func (q Quantities) Validate() error {
	return q.guard.Validate(ErrQuantitiesAreNotConstructed)
}

// Of returns the quantity for productID, or 0 when the product is absent.
func (q Quantities) Of(productID UUID) int {
	return q.values[productID]
}

func (q Quantities) Contains(productID UUID) bool {
	_, ok := q.values[productID]
	return ok
}

func (q Quantities) Len() int {
	return len(q.values)
}

func (q Quantities) Total() int {
	total := 0
	for _, quantity := range q.values {
		total += quantity
	}
	return total
}

// ProductIDs returns the products in a stable order.
func (q Quantities) ProductIDs() []UUID {
	ids := make([]UUID, 0, len(q.values))
	for productID := range q.values {
		ids = append(ids, productID)
	}
	SortUUIDs(ids)
	return ids
}

// Map returns a copy of the vector.
func (q Quantities) Map() map[UUID]int {
	copied := make(map[UUID]int, len(q.values))
	for productID, quantity := range q.values {
		copied[productID] = quantity
	}
	return copied
}
