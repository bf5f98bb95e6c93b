package order

import (
	"fmt"

	"textile/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Open ──> Approved ──> InProgress ──> Completed
//	  │          │  ^          │
//	  │          │  └──────────┘ (last live job cancelled)
//	  └──────────┴──> Cancelled
type Status int

const (
	Unknown Status = iota
	Open
	Approved
	InProgress
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Open:       "Open",
		Approved:   "Approved",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:       "Open",
		Approved:   "Approved",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// AcceptsJobs reports whether job orders may still be split off the order.
func (s Status) AcceptsJobs() bool {
	return s == Approved || s == InProgress
}

func (s Status) Approve() (Status, error) {
	return s.move(Approved, Open)
}

func (s Status) StartProduction() (Status, error) {
	return s.move(InProgress, Approved)
}

// ContinueProduction moves an order that accepts jobs to InProgress; it is a no-op for
// an order that is already in production.
func (s Status) ContinueProduction() (Status, error) {
	return s.move(InProgress, Approved, InProgress)
}

func (s Status) Complete() (Status, error) {
	return s.move(Completed, InProgress)
}

func (s Status) Cancel() (Status, error) {
	return s.move(Cancelled, Open, Approved)
}

// RevertToApproved returns an order whose last live job was cancelled to Approved.
func (s Status) RevertToApproved() (Status, error) {
	return s.move(Approved, InProgress, Approved)
}

func (s Status) move(to Status, allowedFrom ...Status) (Status, error) {
	for _, from := range allowedFrom {
		if s == from {
			return to, nil
		}
	}
	return 0, errs.NewInvalidTransitionError("order", s.String(), to.String(), "")
}
