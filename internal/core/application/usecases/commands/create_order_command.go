package commands

import (
	"errors"
	"strings"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a customer order for product meters.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, "PO-1042", supplyDate,
//	    map[kernel.UUID]int{tapeID: 1200})
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	poNumber   string
	supplyDate time.Time
	quantities kernel.Quantities

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the ids and requires at least one positive product quantity.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	poNumber string,
	supplyDate time.Time,
	quantities map[kernel.UUID]int,
) (CreateOrderCommand, error) {
	q, quantitiesErr := kernel.NewQuantities(quantities)
	if err := errors.Join(orderID.Validate(), customerID.Validate(), quantitiesErr); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:    orderID,
		customerID: customerID,
		poNumber:   strings.TrimSpace(poNumber),
		supplyDate: supplyDate,
		quantities: q,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID          { return c.orderID }
func (c CreateOrderCommand) CustomerID() kernel.UUID       { return c.customerID }
func (c CreateOrderCommand) PONumber() string              { return c.poNumber }
func (c CreateOrderCommand) SupplyDate() time.Time         { return c.supplyDate }
func (c CreateOrderCommand) Quantities() kernel.Quantities { return c.quantities }
