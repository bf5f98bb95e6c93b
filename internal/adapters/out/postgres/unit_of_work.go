// Package postgres is the gorm/PostgreSQL side of the production core: a unit of work sharing one
// transaction between all repositories, and the schema migration.
//
// A command handler creates one unit of work, begins it, loads and saves aggregates through the
// repositories it hands out and commits:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().Get(ctx, id)
//	...
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op that returns gorm.ErrInvalidTransaction.
package postgres

import (
	"context"

	"textile/internal/adapters/out/postgres/jobrepo"
	"textile/internal/adapters/out/postgres/machinerepo"
	"textile/internal/adapters/out/postgres/materialrepo"
	"textile/internal/adapters/out/postgres/orderrepo"
	"textile/internal/adapters/out/postgres/preparatoryrepo"
	"textile/internal/adapters/out/postgres/shiftrepo"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork runs every repository it hands out inside one gorm transaction once Begin
// was called. Before Begin, repositories use the plain connection.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) JobRepository() ports.JobRepository {
	return jobrepo.NewGormJobRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) MachineRepository() ports.MachineRepository {
	return machinerepo.NewGormMachineRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) MaterialRepository() ports.MaterialRepository {
	return materialrepo.NewGormMaterialRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ShiftReportRepository() ports.ShiftReportRepository {
	return shiftrepo.NewGormShiftReportRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PreparatoryRepository() ports.PreparatoryRepository {
	return preparatoryrepo.NewGormPreparatoryRepository(uow.conn(), uow)
}

// TrackAggregate is called by repositories for every aggregate they add or update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedCount reports how many aggregate writes the unit of work has seen.
func (uow *GormUnitOfWork) TrackedCount() int {
	return len(uow.trackedAggregates)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
