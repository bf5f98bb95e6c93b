package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one business transaction. Every repository it hands out after Begin shares
// the transaction, so a multi-aggregate command either commits completely or not at all.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	JobRepository() JobRepository
	MachineRepository() MachineRepository
	MaterialRepository() MaterialRepository
	ShiftReportRepository() ShiftReportRepository
	PreparatoryRepository() PreparatoryRepository
}
