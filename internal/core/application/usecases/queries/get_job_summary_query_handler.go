package queries

import (
	"context"
	"math"

	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetJobSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetJobSummaryQueryHandler(db *gorm.DB) GetJobSummaryQueryHandler {
	return GetJobSummaryQueryHandler{db: db}
}

func (h GetJobSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetJobSummaryQuery,
) (GetJobSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetJobSummaryQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	summary := GetJobSummaryQueryResponse{JobID: query.JobID()}

	var header struct {
		OrderID   uuid.UUID
		Status    int
		MachineID uuid.NullUUID
	}
	result := db.Raw(`SELECT order_id, status, machine_id FROM jobs WHERE id = ?`, query.JobID().Bytes()).Scan(&header)
	if result.Error != nil {
		return GetJobSummaryQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetJobSummaryQueryResponse{}, errs.NewObjectNotFoundError("job", query.JobID().String())
	}

	orderID, err := kernel.UUIDFromBytes(header.OrderID[:])
	if err != nil {
		return GetJobSummaryQueryResponse{}, err
	}
	summary.OrderID = orderID
	summary.Status = job.Status(header.Status).String()
	if header.MachineID.Valid {
		if summary.MachineID, err = kernel.UUIDFromNullable(&header.MachineID.UUID); err != nil {
			return GetJobSummaryQueryResponse{}, err
		}
	}

	rows, err := db.Raw(`
		SELECT product_id, planned, produced, packed, wasted
		FROM job_lines
		WHERE job_id = ?
		ORDER BY product_id
	`, query.JobID().Bytes()).Rows()
	if err != nil {
		return GetJobSummaryQueryResponse{}, err
	}
	defer rows.Close()

	summary.Products = make([]JobProductSummary, 0)
	for rows.Next() {
		var product JobProductSummary
		var productID uuid.UUID

		err = rows.Scan(&productID, &product.Planned, &product.Produced, &product.Packed, &product.Wasted)
		if err != nil {
			return GetJobSummaryQueryResponse{}, err
		}
		if product.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return GetJobSummaryQueryResponse{}, err
		}
		product.Remaining = max(0, product.Planned-product.Produced-product.Wasted)
		if product.Planned > 0 {
			product.PackingPercent = int(math.Round(float64(product.Packed) / float64(product.Planned) * 100))
		}
		summary.Products = append(summary.Products, product)
	}

	if err = rows.Err(); err != nil {
		return GetJobSummaryQueryResponse{}, err
	}

	return summary, nil
}
