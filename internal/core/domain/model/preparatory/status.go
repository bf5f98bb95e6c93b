package preparatory

import (
	"fmt"

	"textile/internal/pkg/errs"
)

// Kind names the preparatory sub-process.
type Kind string

const (
	Warping  Kind = "warping"
	Covering Kind = "covering"
)

func (k Kind) Validate() error {
	if k != Warping && k != Covering {
		return errs.NewValueIsInvalidErrorWithCause("preparatory kind is invalid", fmt.Errorf("%q is not warping or covering", string(k)))
	}
	return nil
}

type Status int

const (
	Unknown Status = iota
	Open
	InProgress
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Open:       "open",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

func (s Status) Validate() error {
	if s < Open || s > Cancelled {
		return errs.NewValueIsOutOfRangeError("preparatory status", int(s), int(Open), int(Cancelled))
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
