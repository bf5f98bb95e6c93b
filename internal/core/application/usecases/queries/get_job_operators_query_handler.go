package queries

import (
	"context"

	"textile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetJobOperatorsQueryHandler struct {
	db *gorm.DB
}

func NewGetJobOperatorsQueryHandler(db *gorm.DB) GetJobOperatorsQueryHandler {
	return GetJobOperatorsQueryHandler{db: db}
}

// Handle counts open and closed reports alike. Employees are sorted by name.
func (h GetJobOperatorsQueryHandler) Handle(
	ctx context.Context,
	query GetJobOperatorsQuery,
) ([]GetJobOperatorsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT e.id, e.name, COUNT(*)
		FROM shift_reports r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.job_id = ?
		GROUP BY e.id, e.name
		ORDER BY e.name, e.id
	`, query.JobID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	operators := make([]GetJobOperatorsQueryResponse, 0)
	for rows.Next() {
		var operator GetJobOperatorsQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &operator.Name, &operator.Shifts); err != nil {
			return nil, err
		}
		if operator.EmployeeID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		operators = append(operators, operator)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return operators, nil
}
