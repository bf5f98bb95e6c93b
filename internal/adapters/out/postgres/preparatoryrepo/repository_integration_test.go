package preparatoryrepo_test

import (
	"context"
	"testing"
	"time"

	"textile/internal/adapters/out/postgres/pgtest"
	"textile/internal/adapters/out/postgres/preparatoryrepo"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/preparatory"
	"textile/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type PreparatoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *preparatoryrepo.GormPreparatoryRepository
	tracker    *MockAggregateTracker
}

func (suite *PreparatoryRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *PreparatoryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = preparatoryrepo.NewGormPreparatoryRepository(suite.db, suite.tracker)
}

func (suite *PreparatoryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PreparatoryRepositoryIntegrationTestSuite) addPair(jobID kernel.UUID) (*preparatory.Process, *preparatory.Process) {
	planned, err := kernel.NewQuantities(map[kernel.UUID]int{kernel.NewUUID(): 80})
	suite.Require().NoError(err)
	warping, err := preparatory.NewProcess(kernel.NewUUID(), jobID, preparatory.Warping, planned)
	suite.Require().NoError(err)
	covering, err := preparatory.NewProcess(kernel.NewUUID(), jobID, preparatory.Covering, planned)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), warping))
	suite.Require().NoError(suite.repository.Add(context.Background(), covering))
	return warping, covering
}

func (suite *PreparatoryRepositoryIntegrationTestSuite) TestGetByJob_ReturnsWarpingThenCovering() {
	jobID := kernel.NewUUID()
	warping, covering := suite.addPair(jobID)
	suite.addPair(kernel.NewUUID())

	records, err := suite.repository.GetByJob(context.Background(), jobID)

	suite.Require().NoError(err)
	suite.Require().Len(records, 2)
	suite.True(records[0].ID().IsEqual(warping.ID()))
	suite.True(records[1].ID().IsEqual(covering.ID()))
	suite.Equal(80, records[0].Planned().Total())
}

func (suite *PreparatoryRepositoryIntegrationTestSuite) TestUpdate_PersistsCompletion() {
	ctx := context.Background()
	warping, _ := suite.addPair(kernel.NewUUID())
	suite.Require().NoError(warping.Start())
	suite.Require().NoError(warping.Complete(time.Now()))

	suite.Require().NoError(suite.repository.Update(ctx, warping))

	restored, err := suite.repository.Get(ctx, warping.ID())
	suite.Require().NoError(err)
	suite.True(restored.IsCompleted())
	suite.NotNil(restored.CompletedAt())
}

func (suite *PreparatoryRepositoryIntegrationTestSuite) TestAdd_SecondRecordOfKind_Fails() {
	jobID := kernel.NewUUID()
	suite.addPair(jobID)
	planned, err := kernel.NewQuantities(map[kernel.UUID]int{kernel.NewUUID(): 1})
	suite.Require().NoError(err)
	again, err := preparatory.NewProcess(kernel.NewUUID(), jobID, preparatory.Warping, planned)
	suite.Require().NoError(err)

	err = suite.repository.Add(context.Background(), again)

	suite.Require().ErrorIs(err, errs.ErrStateConflict)
}

func (suite *PreparatoryRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestPreparatoryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PreparatoryRepositoryIntegrationTestSuite))
}
