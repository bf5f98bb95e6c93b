package queries

import (
	"errors"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/guard"
)

var ErrGetJobOperatorsQueryIsNotConstructed = errors.New(
	"GetJobOperatorsQuery must be created via NewGetJobOperatorsQuery constructor",
)

// GetJobOperatorsQuery lists the employees who filed shift reports for a job, each once.
type GetJobOperatorsQuery struct {
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetJobOperatorsQuery(jobID kernel.UUID) (GetJobOperatorsQuery, error) {
	if err := jobID.Validate(); err != nil {
		return GetJobOperatorsQuery{}, err
	}
	return GetJobOperatorsQuery{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetJobOperatorsQuery) Validate() error {
	return q.guard.Validate(ErrGetJobOperatorsQueryIsNotConstructed)
}

func (q GetJobOperatorsQuery) JobID() kernel.UUID { return q.jobID }

type GetJobOperatorsQueryResponse struct {
	EmployeeID kernel.UUID
	Name       string
	Shifts     int
}
