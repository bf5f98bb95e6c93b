package queries

import (
	"errors"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/guard"
)

var ErrGetJobSummaryQueryIsNotConstructed = errors.New(
	"GetJobSummaryQuery must be created via NewGetJobSummaryQuery constructor",
)

// GetJobSummaryQuery reads the production totals of a job order, as shown on shift entry forms.
type GetJobSummaryQuery struct {
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetJobSummaryQuery(jobID kernel.UUID) (GetJobSummaryQuery, error) {
	if err := jobID.Validate(); err != nil {
		return GetJobSummaryQuery{}, err
	}
	return GetJobSummaryQuery{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetJobSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetJobSummaryQueryIsNotConstructed)
}

func (q GetJobSummaryQuery) JobID() kernel.UUID { return q.jobID }

type GetJobSummaryQueryResponse struct {
	JobID     kernel.UUID
	OrderID   kernel.UUID
	Status    string
	MachineID *kernel.UUID
	Products  []JobProductSummary
}

// JobProductSummary holds the meters of one product. Remaining is planned minus produced and
// wasted, never below zero. PackingPercent is packed over planned, rounded to a whole percent.
type JobProductSummary struct {
	ProductID      kernel.UUID
	Planned        int
	Produced       int
	Packed         int
	Wasted         int
	Remaining      int
	PackingPercent int
}
