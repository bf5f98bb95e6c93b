package services

import (
	"errors"
	"fmt"

	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/machine"
	"textile/internal/pkg/errs"
)

// MachineAllocator keeps the machine and job references symmetric: a machine is running if and
// only if exactly one weaving job points at it.
type MachineAllocator struct{}

func NewMachineAllocator() MachineAllocator {
	return MachineAllocator{}
}

// Claim starts j on a free machine m with the given head assignment.
func (MachineAllocator) Claim(m *machine.Machine, j *job.Job, heads machine.HeadAssignment) error {
	if err := errors.Join(m.Validate(), j.Validate()); err != nil {
		return err
	}
	if err := m.Claim(j.ID(), heads); err != nil {
		return err
	}
	return j.StartWeaving(m.ID())
}

// Release frees m when it runs j. Releasing a machine that does not run j is a no-op.
func (MachineAllocator) Release(m *machine.Machine, j *job.Job) {
	if m == nil || j == nil {
		return
	}
	if m.IsRunning(j.ID()) {
		m.Release()
	}
}

// Reassign moves a weaving job from its current machine to target, carrying the head assignment over.
// The target is claimed first so a refused claim leaves the current machine running the job.
func (a MachineAllocator) Reassign(j *job.Job, current, target *machine.Machine) error {
	if err := errors.Join(j.Validate(), current.Validate(), target.Validate()); err != nil {
		return err
	}
	if j.Status() != job.Weaving {
		return errs.NewStateConflictError("job",
			fmt.Sprintf("machine can only be reassigned while weaving, job is %s", j.Status()))
	}
	if !current.IsRunning(j.ID()) {
		return errs.NewStateConflictError("machine",
			fmt.Sprintf("machine %s is not running job %s", current.Code(), j.ID()))
	}
	if current.ID().IsEqual(target.ID()) {
		return errs.NewStateConflictError("machine",
			fmt.Sprintf("job %s already runs on machine %s", j.ID(), target.Code()))
	}

	if err := target.Claim(j.ID(), current.Heads()); err != nil {
		return err
	}
	current.Release()
	return j.ReassignMachine(target.ID())
}
