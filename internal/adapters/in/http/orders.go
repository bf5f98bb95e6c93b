package http

import (
	"errors"
	"net/http"
	"time"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	customerID, err := fromWire(body.CustomerID)
	if err != nil {
		return s.fail(c, err)
	}
	products, err := productQuantities(body.Products)
	if err != nil {
		return s.fail(c, err)
	}
	var supplyDate time.Time
	if body.SupplyDate != nil {
		supplyDate = body.SupplyDate.Time
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, body.PONumber, supplyDate, products)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return created(c, orderID)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context, id kernel.UUID) error {
	query, err := queries.NewGetOrderDetailQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	detail, err := s.h.GetOrderDetail.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := OrderDetail{
		ID:         detail.ID.Bytes(),
		CustomerID: detail.CustomerID.Bytes(),
		PONumber:   detail.PONumber,
		SupplyDate: openapi_types.Date{Time: detail.SupplyDate},
		Status:     detail.Status,
		CreatedAt:  detail.CreatedAt,
		Lines:      make([]OrderLine, len(detail.Lines)),
		Jobs:       make([]OrderJob, len(detail.Jobs)),
	}
	for i, line := range detail.Lines {
		response.Lines[i] = OrderLine{
			ProductID: line.ProductID.Bytes(),
			Ordered:   line.Ordered,
			Pending:   line.Pending,
			Produced:  line.Produced,
			Packed:    line.Packed,
		}
	}
	for i, j := range detail.Jobs {
		response.Jobs[i] = OrderJob{ID: j.ID.Bytes(), Status: j.Status, MachineID: toWire(j.MachineID)}
	}
	return c.JSON(http.StatusOK, response)
}

// ApproveOrder handles POST /api/v1/orders/{id}/approve.
func (s *Server) ApproveOrder(c echo.Context, id kernel.UUID) error {
	return s.orderCommand(c, id, s.h.ApproveOrder)
}

// StartProduction handles POST /api/v1/orders/{id}/start-production.
func (s *Server) StartProduction(c echo.Context, id kernel.UUID) error {
	return s.orderCommand(c, id, s.h.StartProduction)
}

// CompleteOrder handles POST /api/v1/orders/{id}/complete.
func (s *Server) CompleteOrder(c echo.Context, id kernel.UUID) error {
	return s.orderCommand(c, id, s.h.CompleteOrder)
}

// CancelOrder handles POST /api/v1/orders/{id}/cancel.
func (s *Server) CancelOrder(c echo.Context, id kernel.UUID) error {
	return s.orderCommand(c, id, s.h.CancelOrder)
}

// ReturnOrderMaterials handles POST /api/v1/orders/{id}/return-materials.
func (s *Server) ReturnOrderMaterials(c echo.Context, id kernel.UUID) error {
	return s.orderCommand(c, id, s.h.ReturnOrderMaterials)
}

func (s *Server) orderCommand(c echo.Context, id kernel.UUID, h CommandHandler[commands.OrderCommand]) error {
	cmd, err := commands.NewOrderCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = h.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// productQuantities converts product lines, summing repeated products.
func productQuantities(lines []ProductQuantity) (map[kernel.UUID]int, error) {
	quantities := make(map[kernel.UUID]int, len(lines))
	var errList []error
	for _, line := range lines {
		productID, err := fromWire(line.ProductID)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		quantities[productID] += line.Quantity
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return quantities, nil
}
