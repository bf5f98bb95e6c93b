package machine

import (
	"errors"
	"fmt"
	"strings"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var (
	ErrMachineIsNotConstructed = errors.New("Machine must be created via NewMachine constructor")
	ErrCodeIsRequired          = errs.NewValueIsRequiredError("code")
)

// Machine is a weaving machine with headCount independent heads. It runs at most one job at a time;
// Version is the optimistic-lock token persisted with the row so that concurrent claims cannot both
// succeed.
type Machine struct {
	id           kernel.UUID
	code         string
	manufacturer string
	headCount    int
	status       Status
	heads        HeadAssignment
	runningJobID *kernel.UUID
	version      int

	guard guard.ConstructorGuard
}

func NewMachine(id kernel.UUID, code, manufacturer string, headCount int) (*Machine, error) {
	m := &Machine{
		manufacturer: manufacturer,
		status:       Free,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setCode(code),
		m.setHeadCount(headCount),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMachine rebuilds a machine from persistence. A running machine must reference its job.
func RestoreMachine(
	id kernel.UUID,
	code, manufacturer string,
	headCount int,
	status Status,
	heads HeadAssignment,
	runningJobID *kernel.UUID,
	version int,
) (*Machine, error) {
	m := &Machine{
		manufacturer: manufacturer,
		heads:        heads,
		version:      version,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setCode(code),
		m.setHeadCount(headCount),
		m.setStatus(status, runningJobID),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Machine) Validate() error {
	if m == nil {
		return ErrMachineIsNotConstructed
	}
	return m.guard.Validate(ErrMachineIsNotConstructed)
}

func (m *Machine) ID() kernel.UUID       { return m.id }
func (m *Machine) Code() string          { return m.code }
func (m *Machine) Manufacturer() string  { return m.manufacturer }
func (m *Machine) HeadCount() int        { return m.headCount }
func (m *Machine) Status() Status        { return m.status }
func (m *Machine) Heads() HeadAssignment { return m.heads }
func (m *Machine) Version() int          { return m.version }

func (m *Machine) RunningJobID() *kernel.UUID {
	if m.runningJobID == nil {
		return nil
	}
	id := *m.runningJobID
	return &id
}

// IsRunning reports whether the machine is running jobID.
func (m *Machine) IsRunning(jobID kernel.UUID) bool {
	return m.status == Running && m.runningJobID != nil && m.runningJobID.IsEqual(jobID)
}

// Claim starts jobID on a free machine with the given head assignment, which must cover
// every head of the machine.
func (m *Machine) Claim(jobID kernel.UUID, heads HeadAssignment) error {
	if err := jobID.Validate(); err != nil {
		return err
	}
	if m.status != Free {
		return errs.NewStateConflictError("machine",
			fmt.Sprintf("machine %s is %s, not free", m.code, m.status))
	}
	if err := heads.coverage(m.headCount); err != nil {
		return err
	}

	m.status = Running
	m.runningJobID = &jobID
	m.heads = heads
	return nil
}

// Release frees a running machine. It is idempotent and keeps the head assignment as history.
func (m *Machine) Release() {
	if m.status != Running {
		return
	}
	m.status = Free
	m.runningJobID = nil
}

func (m *Machine) StartMaintenance() error {
	if m.status != Free {
		return errs.NewStateConflictError("machine",
			fmt.Sprintf("machine %s is %s, only a free machine can go to maintenance", m.code, m.status))
	}
	m.status = Maintenance
	return nil
}

func (m *Machine) EndMaintenance() error {
	if m.status != Maintenance {
		return errs.NewStateConflictError("machine",
			fmt.Sprintf("machine %s is %s, not in maintenance", m.code, m.status))
	}
	m.status = Free
	return nil
}

func (m *Machine) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Machine) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrCodeIsRequired
	}
	m.code = code
	return nil
}

func (m *Machine) setHeadCount(headCount int) error {
	if headCount < 1 {
		return errs.NewValueIsInvalidErrorWithCause("head count is invalid",
			fmt.Errorf("%d is not greater than 0", headCount))
	}
	m.headCount = headCount
	return nil
}

func (m *Machine) setStatus(status Status, runningJobID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if (status == Running) != (runningJobID != nil) {
		return errs.NewValueIsInvalidErrorWithCause("running job is invalid",
			fmt.Errorf("only a running machine references a job, machine is %s", status))
	}
	m.status = status
	if runningJobID != nil {
		id := *runningJobID
		m.runningJobID = &id
	}
	return nil
}
