// Package queries contains read operations for the production floor.
// Handlers read straight from the tables with SQL and return read models shaped for screens
// and reports, bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/guard"
)

var ErrGetOrderDetailQueryIsNotConstructed = errors.New(
	"GetOrderDetailQuery must be created via NewGetOrderDetailQuery constructor",
)

// GetOrderDetailQuery reads one order with its product lines and job orders.
//
// Example:
//
//	query, err := NewGetOrderDetailQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	detail, err := NewGetOrderDetailQueryHandler(db).Handle(ctx, query)
//	fmt.Printf("%s is %s with %d jobs\n", detail.PONumber, detail.Status, len(detail.Jobs))
type GetOrderDetailQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderDetailQuery(orderID kernel.UUID) (GetOrderDetailQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDetailQuery{}, err
	}
	return GetOrderDetailQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailQueryIsNotConstructed)
}

func (q GetOrderDetailQuery) OrderID() kernel.UUID { return q.orderID }

type GetOrderDetailQueryResponse struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	PONumber   string
	SupplyDate time.Time
	Status     string
	CreatedAt  time.Time
	Lines      []OrderLineView
	Jobs       []OrderJobView
}

// OrderLineView is the quantity ledger of one product of an order, in meters.
type OrderLineView struct {
	ProductID kernel.UUID
	Ordered   int
	Pending   int
	Produced  int
	Packed    int
}

type OrderJobView struct {
	ID        kernel.UUID
	Status    string
	MachineID *kernel.UUID
}
