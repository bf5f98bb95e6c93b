package machine

import (
	"fmt"

	"textile/internal/pkg/errs"
)

// Status is the availability of a machine: free to be claimed, running exactly one job,
// or out of service for maintenance.
type Status int

const (
	Unknown Status = iota
	Free
	Running
	Maintenance
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "unknown",
		Free:        "free",
		Running:     "running",
		Maintenance: "maintenance",
	}
}

func (s Status) Validate() error {
	if s != Free && s != Running && s != Maintenance {
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
