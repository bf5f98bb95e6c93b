package commands_test

import (
	"context"
	"testing"
	"time"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/machine"
	"textile/internal/core/domain/model/material"
	"textile/internal/core/domain/model/order"
	"textile/internal/core/domain/model/preparatory"
	"textile/internal/core/domain/model/shift"
	"textile/internal/core/domain/services"
	"textile/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, j *job.Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, j *job.Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*job.Job)
	return j, args.Error(1)
}

func (m *MockJobRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*job.Job, error) {
	args := m.Called(ctx, orderID)
	jobs, _ := args.Get(0).([]*job.Job)
	return jobs, args.Error(1)
}

type MockMachineRepository struct{ mock.Mock }

func (m *MockMachineRepository) Add(ctx context.Context, mc *machine.Machine) error {
	return m.Called(ctx, mc).Error(0)
}

func (m *MockMachineRepository) Update(ctx context.Context, mc *machine.Machine) error {
	return m.Called(ctx, mc).Error(0)
}

func (m *MockMachineRepository) Get(ctx context.Context, id kernel.UUID) (*machine.Machine, error) {
	args := m.Called(ctx, id)
	mc, _ := args.Get(0).(*machine.Machine)
	return mc, args.Error(1)
}

type MockMaterialRepository struct{ mock.Mock }

func (m *MockMaterialRepository) Add(ctx context.Context, rm *material.RawMaterial) error {
	return m.Called(ctx, rm).Error(0)
}

func (m *MockMaterialRepository) Update(ctx context.Context, rm *material.RawMaterial) error {
	return m.Called(ctx, rm).Error(0)
}

func (m *MockMaterialRepository) Get(ctx context.Context, id kernel.UUID) (*material.RawMaterial, error) {
	args := m.Called(ctx, id)
	rm, _ := args.Get(0).(*material.RawMaterial)
	return rm, args.Error(1)
}

func (m *MockMaterialRepository) GetMany(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]*material.RawMaterial, error) {
	args := m.Called(ctx, ids)
	materials, _ := args.Get(0).(map[kernel.UUID]*material.RawMaterial)
	return materials, args.Error(1)
}

type MockShiftReportRepository struct{ mock.Mock }

func (m *MockShiftReportRepository) Add(ctx context.Context, r *shift.Report) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockShiftReportRepository) Update(ctx context.Context, r *shift.Report) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockShiftReportRepository) GetOpenByMachine(ctx context.Context, machineID kernel.UUID) (*shift.Report, error) {
	args := m.Called(ctx, machineID)
	r, _ := args.Get(0).(*shift.Report)
	return r, args.Error(1)
}

func (m *MockShiftReportRepository) ExistsFor(
	ctx context.Context,
	machineID kernel.UUID,
	date time.Time,
	s shift.Shift,
) (bool, error) {
	args := m.Called(ctx, machineID, date, s)
	return args.Bool(0), args.Error(1)
}

type MockPreparatoryRepository struct{ mock.Mock }

func (m *MockPreparatoryRepository) Add(ctx context.Context, p *preparatory.Process) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPreparatoryRepository) Update(ctx context.Context, p *preparatory.Process) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPreparatoryRepository) Get(ctx context.Context, id kernel.UUID) (*preparatory.Process, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*preparatory.Process)
	return p, args.Error(1)
}

func (m *MockPreparatoryRepository) GetByJob(ctx context.Context, jobID kernel.UUID) ([]*preparatory.Process, error) {
	args := m.Called(ctx, jobID)
	records, _ := args.Get(0).([]*preparatory.Process)
	return records, args.Error(1)
}

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) CustomerExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDirectory) EmployeeExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCostingService struct{ mock.Mock }

func (m *MockCostingService) ComputeRequirements(ctx context.Context, q kernel.Quantities) ([]order.Requirement, error) {
	args := m.Called(ctx, q)
	requirements, _ := args.Get(0).([]order.Requirement)
	return requirements, args.Error(1)
}

// MockUoW mocks the transaction and hands out the mocked repositories.
type MockUoW struct {
	mock.Mock
	orders      *MockOrderRepository
	jobs        *MockJobRepository
	machines    *MockMachineRepository
	materials   *MockMaterialRepository
	reports     *MockShiftReportRepository
	preparatory *MockPreparatoryRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:      new(MockOrderRepository),
		jobs:        new(MockJobRepository),
		machines:    new(MockMachineRepository),
		materials:   new(MockMaterialRepository),
		reports:     new(MockShiftReportRepository),
		preparatory: new(MockPreparatoryRepository),
	}
}

// expectTx expects Begin and a deferred Rollback, and Commit when commit is true.
func (m *MockUoW) expectTx(commit bool) *MockUoW {
	m.On("Begin", mock.Anything).Return(nil).Once()
	if commit {
		m.On("Commit", mock.Anything).Return(nil).Once()
	}
	m.On("Rollback", mock.Anything).Return(nil).Once()
	return m
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository             { return m.orders }
func (m *MockUoW) JobRepository() ports.JobRepository                 { return m.jobs }
func (m *MockUoW) MachineRepository() ports.MachineRepository         { return m.machines }
func (m *MockUoW) MaterialRepository() ports.MaterialRepository       { return m.materials }
func (m *MockUoW) ShiftReportRepository() ports.ShiftReportRepository { return m.reports }
func (m *MockUoW) PreparatoryRepository() ports.PreparatoryRepository { return m.preparatory }

func (m *MockUoW) assertExpectations(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.jobs.AssertExpectations(t)
	m.machines.AssertExpectations(t)
	m.materials.AssertExpectations(t)
	m.reports.AssertExpectations(t)
	m.preparatory.AssertExpectations(t)
}

// factory adapts a MockUoW to any of the narrowed unit of work factories.
type factory[T any] struct{ uow T }

func (f factory[T]) Create() T { return f.uow }

func orderFactory(uow *MockUoW) commands.OrderUoWFactory {
	return factory[commands.OrderUoW]{uow}
}

func ledgerFactory(uow *MockUoW) commands.LedgerUoWFactory {
	return factory[commands.LedgerUoW]{uow}
}

func materialFactory(uow *MockUoW) commands.MaterialUoWFactory {
	return factory[commands.MaterialUoW]{uow}
}

func machineFactory(uow *MockUoW) commands.MachineUoWFactory {
	return factory[commands.MachineUoW]{uow}
}

func preparatoryFactory(uow *MockUoW) commands.PreparatoryUoWFactory {
	return factory[commands.PreparatoryUoW]{uow}
}

func jobFactory(uow *MockUoW) commands.JobUoWFactory {
	return factory[commands.JobUoW]{uow}
}

func shiftFactory(uow *MockUoW) commands.ShiftUoWFactory {
	return factory[commands.ShiftUoW]{uow}
}

// Aggregates in the states the handlers start from.

func quantities(t *testing.T, values map[kernel.UUID]int) kernel.Quantities {
	t.Helper()
	q, err := kernel.NewQuantities(values)
	require.NoError(t, err)
	return q
}

func openOrder(t *testing.T, ordered map[kernel.UUID]int, requirements ...order.Requirement) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "PO-3310", time.Now().AddDate(0, 1, 0),
		quantities(t, ordered), requirements, time.Now())
	require.NoError(t, err)
	return o
}

func approvedOrder(t *testing.T, ordered map[kernel.UUID]int) *order.Order {
	t.Helper()
	o := openOrder(t, ordered)
	require.NoError(t, o.Approve())
	return o
}

func requirement(t *testing.T, materialID kernel.UUID, weight float64) order.Requirement {
	t.Helper()
	r, err := order.NewRequirement(materialID, weight)
	require.NoError(t, err)
	return r
}

func stockedMaterial(t *testing.T, name string, stock float64) *material.RawMaterial {
	t.Helper()
	m, err := material.NewRawMaterial(kernel.NewUUID(), name, "yarn", 0)
	require.NoError(t, err)
	if stock > 0 {
		require.NoError(t, m.Receive(stock, "GRN-7", time.Now()))
	}
	return m
}

func freeMachine(t *testing.T, code string, headCount int) *machine.Machine {
	t.Helper()
	m, err := machine.NewMachine(kernel.NewUUID(), code, "Jakob Muller", headCount)
	require.NoError(t, err)
	return m
}

// plannedJob reserves planned meters of o for a new job whose preparatory records are completed.
func plannedJob(t *testing.T, o *order.Order, planned map[kernel.UUID]int) (*job.Job, []*preparatory.Process) {
	t.Helper()
	created, err := services.NewJobWorkflow(services.NewMachineAllocator()).
		Create(o, kernel.NewUUID(), quantities(t, planned), time.Now())
	require.NoError(t, err)
	records := []*preparatory.Process{created.Warping, created.Covering}
	for _, r := range records {
		require.NoError(t, r.Start())
		require.NoError(t, r.Complete(time.Now()))
	}
	return created.Job, records
}

// weavingJob puts a planned job on m with every head weaving productID.
func weavingJob(t *testing.T, o *order.Order, m *machine.Machine, productID kernel.UUID, planned int) *job.Job {
	t.Helper()
	j, records := plannedJob(t, o, map[kernel.UUID]int{productID: planned})
	products := make(map[int]kernel.UUID, m.HeadCount())
	for head := 1; head <= m.HeadCount(); head++ {
		products[head] = productID
	}
	heads, err := machine.NewHeadAssignment(products)
	require.NoError(t, err)
	require.NoError(t, services.NewJobWorkflow(services.NewMachineAllocator()).PlanWeaving(j, m, records, heads))
	return j
}
