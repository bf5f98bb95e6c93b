// Package http exposes the production floor over a JSON API under /api/v1.
//
// Requests are validated against the embedded OpenAPI document before they reach a handler;
// handlers translate the body into a command or query, run it, and map domain errors to
// status codes (see errorStatus).
package http

import (
	"context"
	"log/slog"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/core/domain/services"
)

// CommandHandler runs one state-changing use case.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler runs a use case that returns a result: every query, and shift report submission.
type ResultHandler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Handlers lists every use case served over HTTP.
type Handlers struct {
	CreateOrder          CommandHandler[commands.CreateOrderCommand]
	ApproveOrder         CommandHandler[commands.OrderCommand]
	StartProduction      CommandHandler[commands.OrderCommand]
	CompleteOrder        CommandHandler[commands.OrderCommand]
	CancelOrder          CommandHandler[commands.OrderCommand]
	ReturnOrderMaterials CommandHandler[commands.OrderCommand]
	GetOrderDetail       ResultHandler[queries.GetOrderDetailQuery, queries.GetOrderDetailQueryResponse]

	CreateJob       CommandHandler[commands.CreateJobCommand]
	PlanWeaving     CommandHandler[commands.PlanWeavingCommand]
	AssignMachine   CommandHandler[commands.AssignMachineCommand]
	AdvanceJob      CommandHandler[commands.AdvanceJobCommand]
	CancelJob       CommandHandler[commands.CancelJobCommand]
	RecordWastage   CommandHandler[commands.RecordWastageCommand]
	RecordPacking   CommandHandler[commands.RecordPackingCommand]
	GetJobSummary   ResultHandler[queries.GetJobSummaryQuery, queries.GetJobSummaryQueryResponse]
	GetJobOperators ResultHandler[queries.GetJobOperatorsQuery, []queries.GetJobOperatorsQueryResponse]
	ListJobs        ResultHandler[queries.ListJobsQuery, []queries.ListJobsQueryResponse]

	RegisterMachine  CommandHandler[commands.RegisterMachineCommand]
	StartMaintenance CommandHandler[commands.MachineCommand]
	EndMaintenance   CommandHandler[commands.MachineCommand]

	RegisterMaterial     CommandHandler[commands.RegisterMaterialCommand]
	ReceiveMaterial      CommandHandler[commands.ReceiveMaterialCommand]
	GetLowStockMaterials ResultHandler[queries.GetLowStockMaterialsQuery, []queries.GetLowStockMaterialsQueryResponse]

	OpenShiftReport   CommandHandler[commands.OpenShiftReportCommand]
	SubmitShiftReport ResultHandler[commands.SubmitShiftReportCommand, services.Allocation]

	StartPreparatory    CommandHandler[commands.PreparatoryCommand]
	CompletePreparatory CommandHandler[commands.PreparatoryCommand]

	// Ping checks the database for /health. Nil means always healthy.
	Ping func(ctx context.Context) error
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h       Handlers
	metrics *Metrics
	logger  *slog.Logger
}

func NewServer(h Handlers, metrics *Metrics, logger *slog.Logger) *Server {
	return &Server{
		h:       h,
		metrics: metrics,
		logger:  logger.With("component", "http"),
	}
}
