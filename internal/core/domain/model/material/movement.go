package material

import (
	"fmt"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
)

// MovementKind classifies a stock movement.
type MovementKind string

const (
	Inward        MovementKind = "INWARD"
	OrderApproval MovementKind = "ORDER_APPROVAL"
	Restoration   MovementKind = "RESTORATION"
)

func (k MovementKind) Validate() error {
	switch k {
	case Inward, OrderApproval, Restoration:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("movement kind is invalid", fmt.Errorf("%q is not a movement kind", string(k)))
	}
}

// Movement is one append-only entry of a raw material's stock log. Seq is the 1-based position
// in the log and Balance the stock after the movement.
type Movement struct {
	seq        int
	kind       MovementKind
	orderID    *kernel.UUID
	reference  string
	delta      float64
	balance    float64
	occurredAt time.Time
}

// RestoreMovement rebuilds a persisted log entry.
func RestoreMovement(
	seq int,
	kind MovementKind,
	orderID *kernel.UUID,
	reference string,
	delta, balance float64,
	occurredAt time.Time,
) (Movement, error) {
	if seq < 1 {
		return Movement{}, errs.NewValueIsOutOfRangeError("seq", seq, 1, "unbounded")
	}
	if err := kind.Validate(); err != nil {
		return Movement{}, err
	}
	return Movement{
		seq:        seq,
		kind:       kind,
		orderID:    orderID,
		reference:  reference,
		delta:      delta,
		balance:    balance,
		occurredAt: occurredAt,
	}, nil
}

func (m Movement) Seq() int               { return m.seq }
func (m Movement) Kind() MovementKind     { return m.kind }
func (m Movement) OrderID() *kernel.UUID  { return m.orderID }
func (m Movement) Reference() string      { return m.reference }
func (m Movement) Delta() float64         { return m.delta }
func (m Movement) Balance() float64       { return m.balance }
func (m Movement) OccurredAt() time.Time  { return m.occurredAt }
