package ports

import (
	"context"

	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"
)

// JobRepository persists JobOrder aggregates with their quantity lines and wastage audit.
type JobRepository interface {
	Add(ctx context.Context, aggregate *job.Job) error
	Update(ctx context.Context, aggregate *job.Job) error
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetByOrder returns every job of an order, oldest first. Used to settle the order
	// after a job reaches a terminal status.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*job.Job, error)
}
