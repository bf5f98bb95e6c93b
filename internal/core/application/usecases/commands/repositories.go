// Package commands contains the operations that change the state of the production floor.
// Every handler validates its command, opens one unit of work, loads the aggregates it needs,
// lets the domain model or a domain service decide, saves what changed and commits.
package commands

import (
	"context"

	"textile/internal/core/ports"
)

// Unit of work interfaces narrowed to the repositories each group of handlers touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	MachineRepoFactory interface {
		MachineRepository() ports.MachineRepository
	}

	MaterialRepoFactory interface {
		MaterialRepository() ports.MaterialRepository
	}

	ShiftReportRepoFactory interface {
		ShiftReportRepository() ports.ShiftReportRepository
	}

	PreparatoryRepoFactory interface {
		PreparatoryRepository() ports.PreparatoryRepository
	}

	// OrderUoW is used by commands that only move an order through its lifecycle.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// LedgerUoW is used by commands that move stock on behalf of an order.
	LedgerUoW interface {
		TxManager
		OrderRepoFactory
		MaterialRepoFactory
	}

	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	MaterialUoW interface {
		TxManager
		MaterialRepoFactory
	}

	MaterialUoWFactory interface {
		Create() MaterialUoW
	}

	MachineUoW interface {
		TxManager
		MachineRepoFactory
	}

	MachineUoWFactory interface {
		Create() MachineUoW
	}

	PreparatoryUoW interface {
		TxManager
		PreparatoryRepoFactory
	}

	PreparatoryUoWFactory interface {
		Create() PreparatoryUoW
	}

	// JobUoW spans a job order, its order, the machine it borrows and its preparatory records.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   j, err := uow.JobRepository().Get(ctx, jobID)
	//   o, err := uow.OrderRepository().Get(ctx, j.OrderID())
	//   // ... let services.JobWorkflow decide
	//
	//   err = uow.Commit(ctx)
	JobUoW interface {
		TxManager
		OrderRepoFactory
		JobRepoFactory
		MachineRepoFactory
		PreparatoryRepoFactory
	}

	JobUoWFactory interface {
		Create() JobUoW
	}

	// ShiftUoW spans a shift report and everything its production is credited to.
	ShiftUoW interface {
		TxManager
		MachineRepoFactory
		JobRepoFactory
		OrderRepoFactory
		ShiftReportRepoFactory
	}

	ShiftUoWFactory interface {
		Create() ShiftUoW
	}
)
