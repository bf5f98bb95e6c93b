package http

import (
	"net/http"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// RegisterMachine handles POST /api/v1/machines.
func (s *Server) RegisterMachine(c echo.Context) error {
	var body NewMachine
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	machineID := kernel.NewUUID()
	cmd, err := commands.NewRegisterMachineCommand(machineID, body.Code, body.Manufacturer, body.HeadCount)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RegisterMachine.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return created(c, machineID)
}

// StartMaintenance handles POST /api/v1/machines/{id}/maintenance.
func (s *Server) StartMaintenance(c echo.Context, id kernel.UUID) error {
	return s.machineCommand(c, id, s.h.StartMaintenance)
}

// EndMaintenance handles DELETE /api/v1/machines/{id}/maintenance.
func (s *Server) EndMaintenance(c echo.Context, id kernel.UUID) error {
	return s.machineCommand(c, id, s.h.EndMaintenance)
}

func (s *Server) machineCommand(c echo.Context, id kernel.UUID, h CommandHandler[commands.MachineCommand]) error {
	cmd, err := commands.NewMachineCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = h.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// OpenShiftReport handles POST /api/v1/shift-reports.
func (s *Server) OpenShiftReport(c echo.Context) error {
	var body NewShiftReport
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	machineID, machineErr := fromWire(body.MachineID)
	employeeID, employeeErr := fromWire(body.EmployeeID)
	if machineErr != nil {
		return s.fail(c, machineErr)
	}
	if employeeErr != nil {
		return s.fail(c, employeeErr)
	}

	reportID := kernel.NewUUID()
	cmd, err := commands.NewOpenShiftReportCommand(reportID, machineID, employeeID, body.Date.Time, body.Shift)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.OpenShiftReport.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return created(c, reportID)
}

// SubmitShiftReport handles POST /api/v1/machines/{id}/shift-report. It answers with the meters
// credited to the running job and the meters above plan that were discarded.
func (s *Server) SubmitShiftReport(c echo.Context, id kernel.UUID) error {
	var body ShiftProduction
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewSubmitShiftReportCommand(id, body.Quantity, body.Timer, body.Feedback)
	if err != nil {
		return s.fail(c, err)
	}
	allocation, err := s.h.SubmitShiftReport.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	response := Allocation{
		Credited:  productLines(allocation.Credited),
		Discarded: productLines(allocation.Discarded),
	}
	discarded := 0
	for _, line := range response.Discarded {
		discarded += line.Quantity
	}
	s.metrics.production(allocation.CreditedTotal(), discarded)
	return c.JSON(http.StatusOK, response)
}

// productLines lists non-zero quantities ordered by product.
func productLines(quantities map[kernel.UUID]int) []ProductQuantity {
	ids := make([]kernel.UUID, 0, len(quantities))
	for id, q := range quantities {
		if q > 0 {
			ids = append(ids, id)
		}
	}
	kernel.SortUUIDs(ids)

	lines := make([]ProductQuantity, len(ids))
	for i, id := range ids {
		lines[i] = ProductQuantity{ProductID: id.Bytes(), Quantity: quantities[id]}
	}
	return lines
}

// RegisterMaterial handles POST /api/v1/materials.
func (s *Server) RegisterMaterial(c echo.Context) error {
	var body NewMaterial
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	materialID := kernel.NewUUID()
	cmd, err := commands.NewRegisterMaterialCommand(materialID, body.Name, body.Category, body.MinStock)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RegisterMaterial.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return created(c, materialID)
}

// ReceiveMaterial handles POST /api/v1/materials/{id}/inward.
func (s *Server) ReceiveMaterial(c echo.Context, id kernel.UUID) error {
	var body Inward
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewReceiveMaterialCommand(id, body.Weight, body.Reference)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.ReceiveMaterial.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLowStockMaterials handles GET /api/v1/materials/low-stock.
func (s *Server) GetLowStockMaterials(c echo.Context) error {
	materials, err := s.h.GetLowStockMaterials.Handle(c.Request().Context(), queries.NewGetLowStockMaterialsQuery())
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]LowStockMaterial, len(materials))
	for i, m := range materials {
		response[i] = LowStockMaterial{
			ID:        m.ID.Bytes(),
			Name:      m.Name,
			Category:  m.Category,
			Stock:     m.Stock,
			MinStock:  m.MinStock,
			Shortfall: m.Shortfall(),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// StartPreparatory handles POST /api/v1/preparatory/{id}/start.
func (s *Server) StartPreparatory(c echo.Context, id kernel.UUID) error {
	return s.preparatoryCommand(c, id, s.h.StartPreparatory)
}

// CompletePreparatory handles POST /api/v1/preparatory/{id}/complete.
func (s *Server) CompletePreparatory(c echo.Context, id kernel.UUID) error {
	return s.preparatoryCommand(c, id, s.h.CompletePreparatory)
}

func (s *Server) preparatoryCommand(c echo.Context, id kernel.UUID, h CommandHandler[commands.PreparatoryCommand]) error {
	cmd, err := commands.NewPreparatoryCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = h.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
