package machine

import (
	"sort"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
)

// HeadAssignment maps 1-based weaving heads to the product each head produces.
type HeadAssignment struct {
	products map[int]kernel.UUID
}

// NewHeadAssignment builds an assignment in which every listed head carries a product.
// Heads mapped to a nil product fail with an IncompleteAssignmentError.
func NewHeadAssignment(products map[int]kernel.UUID) (HeadAssignment, error) {
	if len(products) == 0 {
		return HeadAssignment{}, errs.NewValueIsRequiredError("head assignment")
	}

	copied := make(map[int]kernel.UUID, len(products))
	var missing []int
	for head, productID := range products {
		if head < 1 {
			return HeadAssignment{}, errs.NewValueIsOutOfRangeError("head", head, 1, "head count")
		}
		if productID.Validate() != nil {
			missing = append(missing, head)
			continue
		}
		copied[head] = productID
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return HeadAssignment{}, errs.NewIncompleteAssignmentError(missing)
	}

	return HeadAssignment{products: copied}, nil
}

// RestoreHeadAssignment rebuilds a persisted assignment, which is empty for a machine that never ran a job.
func RestoreHeadAssignment(products map[int]kernel.UUID) (HeadAssignment, error) {
	if len(products) == 0 {
		return HeadAssignment{}, nil
	}
	return NewHeadAssignment(products)
}

// IsEmpty is true for the zero value, i.e. a machine that never ran a job.
func (a HeadAssignment) IsEmpty() bool {
	return len(a.products) == 0
}

// Heads returns the assigned heads in ascending order.
func (a HeadAssignment) Heads() []int {
	heads := make([]int, 0, len(a.products))
	for head := range a.products {
		heads = append(heads, head)
	}
	sort.Ints(heads)
	return heads
}

func (a HeadAssignment) ProductAt(head int) (kernel.UUID, bool) {
	productID, ok := a.products[head]
	return productID, ok
}

// HeadsPerProduct counts the heads producing each product.
func (a HeadAssignment) HeadsPerProduct() map[kernel.UUID]int {
	counts := make(map[kernel.UUID]int)
	for _, productID := range a.products {
		counts[productID]++
	}
	return counts
}

// Map returns a copy of the assignment.
func (a HeadAssignment) Map() map[int]kernel.UUID {
	copied := make(map[int]kernel.UUID, len(a.products))
	for head, productID := range a.products {
		copied[head] = productID
	}
	return copied
}

// coverage checks the assignment against a machine with headCount heads: heads above headCount are
// out of range and unassigned heads are incomplete.
func (a HeadAssignment) coverage(headCount int) error {
	var missing []int
	for head := 1; head <= headCount; head++ {
		if _, ok := a.products[head]; !ok {
			missing = append(missing, head)
		}
	}
	for _, head := range a.Heads() {
		if head > headCount {
			return errs.NewValueIsOutOfRangeError("head", head, 1, headCount)
		}
	}
	if len(missing) > 0 {
		return errs.NewIncompleteAssignmentError(missing)
	}
	return nil
}
