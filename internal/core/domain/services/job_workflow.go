package services

import (
	"errors"
	"fmt"
	"time"

	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/machine"
	"textile/internal/core/domain/model/order"
	"textile/internal/core/domain/model/preparatory"
	"textile/internal/pkg/errs"
)

// JobWorkflow drives a job order through its fixed stages and keeps the owning order, the machine
// and the preparatory records in step with it.
//
// After every status change of a job the order is settled: once no sibling job is left running,
// a completed job completes the order and a cancelled job sends it back to Approved.
type JobWorkflow struct {
	machines MachineAllocator
}

func NewJobWorkflow(machines MachineAllocator) JobWorkflow {
	return JobWorkflow{machines: machines}
}

// Created is a new job order with its warping and covering records.
type Created struct {
	Job      *job.Job
	Warping  *preparatory.Process
	Covering *preparatory.Process
}

// Create splits planned meters off the pending vector of o.
func (JobWorkflow) Create(o *order.Order, jobID kernel.UUID, planned kernel.Quantities, at time.Time) (Created, error) {
	if err := o.Validate(); err != nil {
		return Created{}, err
	}

	warpingID, coveringID := kernel.NewUUID(), kernel.NewUUID()
	j, err := job.NewJob(jobID, o.ID(), planned, warpingID, coveringID, at)
	if err != nil {
		return Created{}, err
	}
	warping, err := preparatory.NewProcess(warpingID, jobID, preparatory.Warping, planned)
	if err != nil {
		return Created{}, err
	}
	covering, err := preparatory.NewProcess(coveringID, jobID, preparatory.Covering, planned)
	if err != nil {
		return Created{}, err
	}

	if err = o.ReserveForJob(jobID, planned); err != nil {
		return Created{}, err
	}
	return Created{Job: j, Warping: warping, Covering: covering}, nil
}

// PlanWeaving claims m for a preparatory job whose warping and covering are completed.
func (w JobWorkflow) PlanWeaving(
	j *job.Job,
	m *machine.Machine,
	records []*preparatory.Process,
	heads machine.HeadAssignment,
) error {
	if err := j.Validate(); err != nil {
		return err
	}
	if _, err := j.Status().Advance(job.Weaving); err != nil {
		return err
	}
	for _, kind := range []preparatory.Kind{preparatory.Warping, preparatory.Covering} {
		if !completed(records, j.ID(), kind) {
			return errs.NewStateConflictError("job",
				fmt.Sprintf("%s of job %s is not completed", kind, j.ID()))
		}
	}
	return w.machines.Claim(m, j, heads)
}

// Advance moves j to next. Leaving weaving releases m, which may be nil for any other stage.
// siblings are the other jobs of o.
func (w JobWorkflow) Advance(j *job.Job, m *machine.Machine, o *order.Order, siblings []*job.Job, next job.Status) error {
	if err := errors.Join(j.Validate(), o.Validate()); err != nil {
		return err
	}
	leavesWeaving := j.Status() == job.Weaving
	if leavesWeaving && m == nil {
		return errs.NewStateConflictError("job", fmt.Sprintf("weaving job %s has no machine loaded", j.ID()))
	}

	if err := j.Advance(next); err != nil {
		return err
	}
	if leavesWeaving {
		w.machines.Release(m, j)
	}
	return w.settleOrder(j, o, siblings)
}

// Cancel terminates j, frees its machine, stops unfinished preparatory records and gives the
// planned meters back to the order.
func (w JobWorkflow) Cancel(
	j *job.Job,
	m *machine.Machine,
	o *order.Order,
	records []*preparatory.Process,
	siblings []*job.Job,
	reason string,
) error {
	if err := errors.Join(j.Validate(), o.Validate()); err != nil {
		return err
	}
	if j.Status() == job.Weaving && m == nil {
		return errs.NewStateConflictError("job", fmt.Sprintf("weaving job %s has no machine loaded", j.ID()))
	}

	if err := j.Cancel(reason); err != nil {
		return err
	}
	w.machines.Release(m, j)
	for _, record := range records {
		if record.JobID().IsEqual(j.ID()) {
			record.Cancel()
		}
	}
	if err := o.RestorePending(j.Planned()); err != nil {
		return err
	}
	return w.settleOrder(j, o, siblings)
}

// RecordPacking books packed meters on both the job and its order.
func (JobWorkflow) RecordPacking(j *job.Job, o *order.Order, productID kernel.UUID, quantity int) error {
	if err := errors.Join(j.Validate(), o.Validate()); err != nil {
		return err
	}
	if !j.OrderID().IsEqual(o.ID()) {
		return errs.NewStateConflictError("job",
			fmt.Sprintf("job %s does not belong to order %s", j.ID(), o.ID()))
	}
	if err := j.RecordPacking(productID, quantity); err != nil {
		return err
	}
	return o.CreditPacking(productID, quantity)
}

func (JobWorkflow) settleOrder(j *job.Job, o *order.Order, siblings []*job.Job) error {
	if !j.Status().IsTerminal() {
		return nil
	}
	for _, sibling := range siblings {
		if sibling.ID().IsEqual(j.ID()) {
			continue
		}
		if !sibling.Status().IsTerminal() {
			return nil
		}
	}

	switch j.Status() {
	case job.Completed:
		return o.Complete()
	case job.Cancelled:
		return o.RevertToApproved()
	default:
		return nil
	}
}

func completed(records []*preparatory.Process, jobID kernel.UUID, kind preparatory.Kind) bool {
	for _, record := range records {
		if record.JobID().IsEqual(jobID) && record.Kind() == kind && record.IsCompleted() {
			return true
		}
	}
	return false
}
