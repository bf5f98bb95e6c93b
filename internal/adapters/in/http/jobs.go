package http

import (
	"net/http"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// CreateJob handles POST /api/v1/jobs.
func (s *Server) CreateJob(c echo.Context) error {
	var body NewJob
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	orderID, err := fromWire(body.OrderID)
	if err != nil {
		return s.fail(c, err)
	}
	planned, err := productQuantities(body.Products)
	if err != nil {
		return s.fail(c, err)
	}

	jobID := kernel.NewUUID()
	cmd, err := commands.NewCreateJobCommand(jobID, orderID, planned)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateJob.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	s.metrics.jobEntered(job.Preparatory.String())
	return created(c, jobID)
}

// ListJobs handles GET /api/v1/jobs?status=weaving&status=finishing.
func (s *Server) ListJobs(c echo.Context) error {
	var statuses []string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &statuses); err != nil {
		return badRequest(c, "invalid format for parameter status: "+err.Error())
	}
	query, err := queries.NewListJobsQuery(statuses)
	if err != nil {
		return s.fail(c, err)
	}
	jobs, err := s.h.ListJobs.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]JobListItem, len(jobs))
	for i, j := range jobs {
		response[i] = JobListItem{
			ID:        j.ID.Bytes(),
			OrderID:   j.OrderID.Bytes(),
			PONumber:  j.PONumber,
			Status:    j.Status,
			MachineID: toWire(j.MachineID),
			Planned:   j.Planned,
			Produced:  j.Produced,
			CreatedAt: j.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetJobSummary handles GET /api/v1/jobs/{id}/summary.
func (s *Server) GetJobSummary(c echo.Context, id kernel.UUID) error {
	query, err := queries.NewGetJobSummaryQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	summary, err := s.h.GetJobSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := JobSummary{
		JobID:     summary.JobID.Bytes(),
		OrderID:   summary.OrderID.Bytes(),
		Status:    summary.Status,
		MachineID: toWire(summary.MachineID),
		Products:  make([]JobProduct, len(summary.Products)),
	}
	for i, p := range summary.Products {
		response.Products[i] = JobProduct{
			ProductID:      p.ProductID.Bytes(),
			Planned:        p.Planned,
			Produced:       p.Produced,
			Packed:         p.Packed,
			Wasted:         p.Wasted,
			Remaining:      p.Remaining,
			PackingPercent: p.PackingPercent,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetJobOperators handles GET /api/v1/jobs/{id}/operators.
func (s *Server) GetJobOperators(c echo.Context, id kernel.UUID) error {
	query, err := queries.NewGetJobOperatorsQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	operators, err := s.h.GetJobOperators.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]JobOperator, len(operators))
	for i, o := range operators {
		response[i] = JobOperator{EmployeeID: o.EmployeeID.Bytes(), Name: o.Name, Shifts: o.Shifts}
	}
	return c.JSON(http.StatusOK, response)
}

// PlanWeaving handles POST /api/v1/jobs/{id}/plan-weaving.
func (s *Server) PlanWeaving(c echo.Context, id kernel.UUID) error {
	var body WeavingPlan
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	machineID, err := fromWire(body.MachineID)
	if err != nil {
		return s.fail(c, err)
	}
	heads := make(map[int]kernel.UUID, len(body.Heads))
	for _, h := range body.Heads {
		// A nil product is kept so the assignment reports the head as empty.
		productID, _ := fromWire(h.ProductID)
		heads[h.Head] = productID
	}

	cmd, err := commands.NewPlanWeavingCommand(id, machineID, heads)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.PlanWeaving.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	s.metrics.jobEntered(job.Weaving.String())
	return c.NoContent(http.StatusNoContent)
}

// AssignMachine handles POST /api/v1/jobs/{id}/assign-machine.
func (s *Server) AssignMachine(c echo.Context, id kernel.UUID) error {
	var body MachineAssignment
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	machineID, err := fromWire(body.MachineID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAssignMachineCommand(id, machineID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.AssignMachine.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AdvanceJob handles POST /api/v1/jobs/{id}/advance.
func (s *Server) AdvanceJob(c echo.Context, id kernel.UUID) error {
	var body JobAdvance
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewAdvanceJobCommand(id, body.Status)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.AdvanceJob.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	s.metrics.jobEntered(cmd.Next().String())
	return c.NoContent(http.StatusNoContent)
}

// CancelJob handles POST /api/v1/jobs/{id}/cancel. The body is optional.
func (s *Server) CancelJob(c echo.Context, id kernel.UUID) error {
	var body JobCancellation
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewCancelJobCommand(id, body.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CancelJob.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	s.metrics.jobEntered(job.Cancelled.String())
	return c.NoContent(http.StatusNoContent)
}

// RecordWastage handles POST /api/v1/jobs/{id}/wastage.
func (s *Server) RecordWastage(c echo.Context, id kernel.UUID) error {
	var body NewWastage
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	productID, productErr := fromWire(body.ProductID)
	employeeID, employeeErr := fromWire(body.EmployeeID)
	if productErr != nil {
		return s.fail(c, productErr)
	}
	if employeeErr != nil {
		return s.fail(c, employeeErr)
	}

	wastageID := kernel.NewUUID()
	cmd, err := commands.NewRecordWastageCommand(wastageID, id, productID, employeeID, body.Quantity, body.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RecordWastage.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return created(c, wastageID)
}

// RecordPacking handles POST /api/v1/jobs/{id}/packing.
func (s *Server) RecordPacking(c echo.Context, id kernel.UUID) error {
	var body ProductQuantity
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	productID, err := fromWire(body.ProductID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRecordPackingCommand(id, productID, body.Quantity)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RecordPacking.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
