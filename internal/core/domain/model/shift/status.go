package shift

import (
	"fmt"

	"textile/internal/pkg/errs"
)

// Shift is the work period a report covers.
type Shift string

const (
	Day   Shift = "DAY"
	Night Shift = "NIGHT"
)

func ParseShift(s string) (Shift, error) {
	shift := Shift(s)
	if err := shift.Validate(); err != nil {
		return "", err
	}
	return shift, nil
}

func (s Shift) Validate() error {
	if s != Day && s != Night {
		return errs.NewValueIsInvalidErrorWithCause("shift is invalid", fmt.Errorf("%q is neither DAY nor NIGHT", string(s)))
	}
	return nil
}

type Status int

const (
	Unknown Status = iota
	Open
	Closed
)

func (s Status) Validate() error {
	if s != Open && s != Closed {
		return errs.NewValueIsOutOfRangeError("shift report status", int(s), int(Open), int(Closed))
	}
	return nil
}

func (s Status) String() string {
	switch s {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}
