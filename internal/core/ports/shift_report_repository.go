package ports

import (
	"context"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/shift"
)

// ShiftReportRepository persists shift production reports.
type ShiftReportRepository interface {
	Add(ctx context.Context, aggregate *shift.Report) error
	Update(ctx context.Context, aggregate *shift.Report) error

	// GetOpenByMachine returns the open report of a machine or an ObjectNotFoundError.
	GetOpenByMachine(ctx context.Context, machineID kernel.UUID) (*shift.Report, error)

	// ExistsFor reports whether the machine already has a report for the date and shift.
	ExistsFor(ctx context.Context, machineID kernel.UUID, date time.Time, s shift.Shift) (bool, error)
}
