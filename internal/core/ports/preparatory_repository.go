package ports

import (
	"context"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/preparatory"
)

// PreparatoryRepository persists warping and covering records.
type PreparatoryRepository interface {
	Add(ctx context.Context, aggregate *preparatory.Process) error
	Update(ctx context.Context, aggregate *preparatory.Process) error
	Get(ctx context.Context, id kernel.UUID) (*preparatory.Process, error)
	GetByJob(ctx context.Context, jobID kernel.UUID) ([]*preparatory.Process, error)
}
