package queries

import (
	"context"
	"time"

	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ListJobsQueryHandler struct {
	db *gorm.DB
}

func NewListJobsQueryHandler(db *gorm.DB) ListJobsQueryHandler {
	return ListJobsQueryHandler{db: db}
}

// Handle returns jobs oldest first with their planned and produced meters summed over products.
func (h ListJobsQueryHandler) Handle(ctx context.Context, query ListJobsQuery) ([]ListJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]int64, 0, len(query.Statuses()))
	for _, s := range query.Statuses() {
		statuses = append(statuses, int64(s))
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			j.id,
			j.order_id,
			o.po_number,
			j.status,
			j.machine_id,
			COALESCE(SUM(l.planned), 0),
			COALESCE(SUM(l.produced), 0),
			j.created_at
		FROM jobs j
		JOIN orders o ON o.id = j.order_id
		LEFT JOIN job_lines l ON l.job_id = j.id
		WHERE cardinality(?::smallint[]) = 0 OR j.status = ANY(?::smallint[])
		GROUP BY j.id, o.po_number
		ORDER BY j.created_at, j.id
	`, pq.Array(statuses), pq.Array(statuses)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]ListJobsQueryResponse, 0)
	for rows.Next() {
		var view ListJobsQueryResponse
		var id, orderID uuid.UUID
		var machineID uuid.NullUUID
		var status int
		var createdAt time.Time

		err = rows.Scan(&id, &orderID, &view.PONumber, &status, &machineID, &view.Planned, &view.Produced, &createdAt)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if machineID.Valid {
			if view.MachineID, err = kernel.UUIDFromNullable(&machineID.UUID); err != nil {
				return nil, err
			}
		}
		view.Status = job.Status(status).String()
		view.CreatedAt = createdAt
		jobs = append(jobs, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
