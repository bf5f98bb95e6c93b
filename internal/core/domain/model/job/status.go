package job

import (
	"fmt"

	"textile/internal/pkg/errs"
)

// Status is the manufacturing stage of a job order. Stages only move forward along
//
//	preparatory -> weaving -> finishing -> checking -> packing -> completed
//
// and any non-terminal stage may be cancelled.
type Status int

const (
	Unknown Status = iota
	Preparatory
	Weaving
	Finishing
	Checking
	Packing
	Completed
	Cancelled
)

// transitions is the single legal successor of every non-terminal stage.
var transitions = map[Status]Status{
	Preparatory: Weaving,
	Weaving:     Finishing,
	Finishing:   Checking,
	Checking:    Packing,
	Packing:     Completed,
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "unknown",
		Preparatory: "preparatory",
		Weaving:     "weaving",
		Finishing:   "finishing",
		Checking:    "checking",
		Packing:     "packing",
		Completed:   "completed",
		Cancelled:   "cancelled",
	}
}

// ParseStatus maps the lower-case stage name used on the wire to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a job status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Next returns the single legal successor, false for terminal stages.
func (s Status) Next() (Status, bool) {
	next, ok := transitions[s]
	return next, ok
}

// Advance checks that to is the legal successor of s.
func (s Status) Advance(to Status) (Status, error) {
	next, ok := s.Next()
	if !ok {
		return 0, errs.NewInvalidTransitionError("job", s.String(), to.String(), "")
	}
	if next != to {
		return 0, errs.NewInvalidTransitionError("job", s.String(), to.String(), next.String())
	}
	return next, nil
}

func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return 0, errs.NewInvalidTransitionError("job", s.String(), Cancelled.String(), "")
	}
	return Cancelled, nil
}

// AcceptsWastage reports whether wastage may be recorded in this stage.
func (s Status) AcceptsWastage() bool {
	return s == Weaving || s == Finishing || s == Checking
}

// AcceptsPacking reports whether packed meters may be recorded in this stage.
func (s Status) AcceptsPacking() bool {
	return s == Checking || s == Packing
}
