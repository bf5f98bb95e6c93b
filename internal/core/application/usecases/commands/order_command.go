package commands

import (
	"errors"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/guard"
)

var ErrOrderCommandIsNotConstructed = errors.New("order command must be created via its constructor")

// OrderCommand addresses one order. It is the input of ApproveOrder, StartProduction,
// CompleteOrder, CancelOrder and ReturnOrderMaterials.
type OrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewOrderCommand(orderID kernel.UUID) (OrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return OrderCommand{}, err
	}
	return OrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c OrderCommand) Validate() error {
	return c.guard.Validate(ErrOrderCommandIsNotConstructed)
}

func (c OrderCommand) OrderID() kernel.UUID { return c.orderID }
