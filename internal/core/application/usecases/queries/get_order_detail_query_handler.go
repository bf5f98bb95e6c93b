package queries

import (
	"context"
	"time"

	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderDetailQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailQueryHandler(db *gorm.DB) GetOrderDetailQueryHandler {
	return GetOrderDetailQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError for an unknown order. Lines are sorted by product id and
// jobs by creation time.
func (h GetOrderDetailQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailQuery,
) (GetOrderDetailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	detail := GetOrderDetailQueryResponse{ID: query.OrderID()}

	var header struct {
		CustomerID uuid.UUID
		PONumber   string `gorm:"column:po_number"`
		SupplyDate time.Time
		Status     int
		CreatedAt  time.Time
	}
	result := db.Raw(`
		SELECT customer_id, po_number, supply_date, status, created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&header)
	if result.Error != nil {
		return GetOrderDetailQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetOrderDetailQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	customerID, err := kernel.UUIDFromBytes(header.CustomerID[:])
	if err != nil {
		return GetOrderDetailQueryResponse{}, err
	}
	detail.CustomerID = customerID
	detail.PONumber = header.PONumber
	detail.SupplyDate = header.SupplyDate
	detail.Status = order.Status(header.Status).String()
	detail.CreatedAt = header.CreatedAt

	if detail.Lines, err = h.lines(db, query.OrderID()); err != nil {
		return GetOrderDetailQueryResponse{}, err
	}
	if detail.Jobs, err = h.jobs(db, query.OrderID()); err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	return detail, nil
}

func (h GetOrderDetailQueryHandler) lines(db *gorm.DB, orderID kernel.UUID) ([]OrderLineView, error) {
	rows, err := db.Raw(`
		SELECT product_id, ordered, pending, produced, packed
		FROM order_lines
		WHERE order_id = ?
		ORDER BY product_id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineView, 0)
	for rows.Next() {
		var line OrderLineView
		var productID uuid.UUID

		if err = rows.Scan(&productID, &line.Ordered, &line.Pending, &line.Produced, &line.Packed); err != nil {
			return nil, err
		}
		if line.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (h GetOrderDetailQueryHandler) jobs(db *gorm.DB, orderID kernel.UUID) ([]OrderJobView, error) {
	rows, err := db.Raw(`
		SELECT id, status, machine_id
		FROM jobs
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]OrderJobView, 0)
	for rows.Next() {
		var view OrderJobView
		var id uuid.UUID
		var status int
		var machineID uuid.NullUUID

		if err = rows.Scan(&id, &status, &machineID); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if machineID.Valid {
			if view.MachineID, err = kernel.UUIDFromNullable(&machineID.UUID); err != nil {
				return nil, err
			}
		}
		view.Status = job.Status(status).String()
		jobs = append(jobs, view)
	}

	return jobs, rows.Err()
}
