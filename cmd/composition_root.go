package cmd

import (
	"context"
	"log/slog"

	httpadapter "textile/internal/adapters/in/http"
	"textile/internal/adapters/out/postgres"
	"textile/internal/adapters/out/postgres/costing"
	"textile/internal/adapters/out/postgres/directory"
	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

// HTTPHandlers wires every use case served by the HTTP adapter.
func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		ApproveOrder:         commands.NewApproveOrderCommandHandler(c.ledgerUoWFactory()),
		StartProduction:      commands.NewStartProductionCommandHandler(c.orderUoWFactory()),
		CompleteOrder:        commands.NewCompleteOrderCommandHandler(c.orderUoWFactory()),
		CancelOrder:          commands.NewCancelOrderCommandHandler(c.orderUoWFactory()),
		ReturnOrderMaterials: commands.NewReturnOrderMaterialsCommandHandler(c.ledgerUoWFactory()),
		GetOrderDetail:       queries.NewGetOrderDetailQueryHandler(c.gormDB),

		CreateJob:       commands.NewCreateJobCommandHandler(c.jobUoWFactory()),
		PlanWeaving:     commands.NewPlanWeavingCommandHandler(c.jobUoWFactory()),
		AssignMachine:   commands.NewAssignMachineCommandHandler(c.jobUoWFactory()),
		AdvanceJob:      commands.NewAdvanceJobCommandHandler(c.jobUoWFactory()),
		CancelJob:       commands.NewCancelJobCommandHandler(c.jobUoWFactory()),
		RecordWastage:   commands.NewRecordWastageCommandHandler(c.jobUoWFactory(), directory.NewGormDirectory(c.gormDB)),
		RecordPacking:   commands.NewRecordPackingCommandHandler(c.jobUoWFactory()),
		GetJobSummary:   queries.NewGetJobSummaryQueryHandler(c.gormDB),
		GetJobOperators: queries.NewGetJobOperatorsQueryHandler(c.gormDB),
		ListJobs:        queries.NewListJobsQueryHandler(c.gormDB),

		RegisterMachine:  commands.NewRegisterMachineCommandHandler(c.machineUoWFactory()),
		StartMaintenance: commands.NewStartMaintenanceCommandHandler(c.machineUoWFactory()),
		EndMaintenance:   commands.NewEndMaintenanceCommandHandler(c.machineUoWFactory()),

		RegisterMaterial:     commands.NewRegisterMaterialCommandHandler(c.materialUoWFactory()),
		ReceiveMaterial:      commands.NewReceiveMaterialCommandHandler(c.materialUoWFactory()),
		GetLowStockMaterials: c.CreateGetLowStockMaterialsQueryHandler(),

		OpenShiftReport:   commands.NewOpenShiftReportCommandHandler(c.shiftUoWFactory(), directory.NewGormDirectory(c.gormDB)),
		SubmitShiftReport: commands.NewSubmitShiftReportCommandHandler(c.shiftUoWFactory()),

		StartPreparatory:    commands.NewStartPreparatoryCommandHandler(c.preparatoryUoWFactory()),
		CompletePreparatory: commands.NewCompletePreparatoryCommandHandler(c.preparatoryUoWFactory()),

		Ping: c.ping,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		directory.NewGormDirectory(c.gormDB),
		costing.NewGormCostingService(c.gormDB),
	)
}

func (c *CompositionRoot) CreateGetLowStockMaterialsQueryHandler() queries.GetLowStockMaterialsQueryHandler {
	return queries.NewGetLowStockMaterialsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetLowStockMaterialsQueryHandler(), c.config.LowStockSchedule, c.logger)
}

func (c *CompositionRoot) ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) ledgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) jobUoWFactory() commands.JobUoWFactory {
	return FuncJobUoWFactory(func() commands.JobUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) machineUoWFactory() commands.MachineUoWFactory {
	return FuncMachineUoWFactory(func() commands.MachineUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) materialUoWFactory() commands.MaterialUoWFactory {
	return FuncMaterialUoWFactory(func() commands.MaterialUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) shiftUoWFactory() commands.ShiftUoWFactory {
	return FuncShiftUoWFactory(func() commands.ShiftUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) preparatoryUoWFactory() commands.PreparatoryUoWFactory {
	return FuncPreparatoryUoWFactory(func() commands.PreparatoryUoW { return c.uowFactory.Create() })
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}

type FuncMachineUoWFactory func() commands.MachineUoW

func (f FuncMachineUoWFactory) Create() commands.MachineUoW {
	return f()
}

type FuncMaterialUoWFactory func() commands.MaterialUoW

func (f FuncMaterialUoWFactory) Create() commands.MaterialUoW {
	return f()
}

type FuncShiftUoWFactory func() commands.ShiftUoW

func (f FuncShiftUoWFactory) Create() commands.ShiftUoW {
	return f()
}

type FuncPreparatoryUoWFactory func() commands.PreparatoryUoW

func (f FuncPreparatoryUoWFactory) Create() commands.PreparatoryUoW {
	return f()
}
