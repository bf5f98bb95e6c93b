package preparatory

import (
	"errors"
	"fmt"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var ErrProcessIsNotConstructed = errors.New("Process must be created via NewProcess constructor")

// Process is a warping or covering record seeded with a job's planned meters. Both records of a job
// must be completed before the job can start weaving.
type Process struct {
	id          kernel.UUID
	jobID       kernel.UUID
	kind        Kind
	planned     kernel.Quantities
	status      Status
	completedAt *time.Time

	guard guard.ConstructorGuard
}

func NewProcess(id, jobID kernel.UUID, kind Kind, planned kernel.Quantities) (*Process, error) {
	p := &Process{
		status: Open,
		guard:  guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		p.setIDs(id, jobID),
		kind.Validate(),
		planned.Validate(),
	); err != nil {
		return nil, err
	}
	p.kind = kind
	p.planned = planned
	return p, nil
}

func RestoreProcess(
	id, jobID kernel.UUID,
	kind Kind,
	planned kernel.Quantities,
	status Status,
	completedAt *time.Time,
) (*Process, error) {
	p, err := NewProcess(id, jobID, kind, planned)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	p.status = status
	p.completedAt = completedAt
	return p, nil
}

func (p *Process) Validate() error {
	if p == nil {
		return ErrProcessIsNotConstructed
	}
	return p.guard.Validate(ErrProcessIsNotConstructed)
}

func (p *Process) ID() kernel.UUID              { return p.id }
func (p *Process) JobID() kernel.UUID           { return p.jobID }
func (p *Process) Kind() Kind                   { return p.kind }
func (p *Process) Planned() kernel.Quantities   { return p.planned }
func (p *Process) Status() Status               { return p.status }
func (p *Process) CompletedAt() *time.Time      { return p.completedAt }
func (p *Process) IsCompleted() bool            { return p.status == Completed }

func (p *Process) Start() error {
	if p.status != Open {
		return p.conflict(InProgress)
	}
	p.status = InProgress
	return nil
}

func (p *Process) Complete(at time.Time) error {
	if p.status != InProgress {
		return p.conflict(Completed)
	}
	p.status = Completed
	p.completedAt = &at
	return nil
}

// Cancel stops an unfinished record when its job is cancelled. A completed record stays completed.
func (p *Process) Cancel() {
	if p.status.IsTerminal() {
		return
	}
	p.status = Cancelled
}

func (p *Process) conflict(to Status) error {
	return errs.NewInvalidTransitionError(fmt.Sprintf("%s record", p.kind), p.status.String(), to.String(), "")
}

func (p *Process) setIDs(id, jobID kernel.UUID) error {
	if err := errors.Join(id.Validate(), jobID.Validate()); err != nil {
		return err
	}
	p.id = id
	p.jobID = jobID
	return nil
}
