package queries

import (
	"errors"
	"strings"
	"time"

	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/guard"
)

var ErrListJobsQueryIsNotConstructed = errors.New("ListJobsQuery must be created via NewListJobsQuery constructor")

// ListJobsQuery lists job orders, optionally only those in the given stages.
//
// Example:
//
//	query, err := NewListJobsQuery([]string{"weaving", "finishing"})
//	jobs, err := NewListJobsQueryHandler(db).Handle(ctx, query)
type ListJobsQuery struct {
	statuses []job.Status

	guard guard.ConstructorGuard
}

// NewListJobsQuery parses lower-case stage names. No names means every stage.
func NewListJobsQuery(statuses []string) (ListJobsQuery, error) {
	parsed := make([]job.Status, 0, len(statuses))
	var errList []error
	for _, s := range statuses {
		status, err := job.ParseStatus(strings.ToLower(strings.TrimSpace(s)))
		if err != nil {
			errList = append(errList, err)
			continue
		}
		parsed = append(parsed, status)
	}
	if err := errors.Join(errList...); err != nil {
		return ListJobsQuery{}, err
	}
	return ListJobsQuery{statuses: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q ListJobsQuery) Validate() error {
	return q.guard.Validate(ErrListJobsQueryIsNotConstructed)
}

func (q ListJobsQuery) Statuses() []job.Status { return q.statuses }

type ListJobsQueryResponse struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	PONumber  string
	Status    string
	MachineID *kernel.UUID
	Planned   int
	Produced  int
	CreatedAt time.Time
}
