package ports

import (
	"context"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/machine"
)

// MachineRepository persists Machine aggregates.
type MachineRepository interface {
	// Add registers a machine. A duplicate code is a StateConflictError.
	Add(ctx context.Context, aggregate *machine.Machine) error

	// Update is a compare-and-set on the version the machine was loaded with. When another
	// transaction changed the machine in between, a StateConflictError is returned and nothing
	// is written, so two concurrent claims can never both succeed.
	Update(ctx context.Context, aggregate *machine.Machine) error

	Get(ctx context.Context, id kernel.UUID) (*machine.Machine, error)
}
