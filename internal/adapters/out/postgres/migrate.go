package postgres

import (
	"textile/internal/adapters/out/postgres/costing"
	"textile/internal/adapters/out/postgres/directory"
	"textile/internal/adapters/out/postgres/jobrepo"
	"textile/internal/adapters/out/postgres/machinerepo"
	"textile/internal/adapters/out/postgres/materialrepo"
	"textile/internal/adapters/out/postgres/orderrepo"
	"textile/internal/adapters/out/postgres/preparatoryrepo"
	"textile/internal/adapters/out/postgres/shiftrepo"

	"gorm.io/gorm"
)

// Tables lists every table of the schema, children after parents.
var Tables = []string{
	"customers", "employees", "product_recipes",
	"orders", "order_lines", "order_requirements", "order_jobs",
	"jobs", "job_lines", "job_wastages",
	"preparatory_records", "preparatory_lines",
	"machines", "machine_heads",
	"raw_materials", "material_movements",
	"shift_reports",
}

func models() []any {
	return []any{
		&directory.CustomerDTO{}, &directory.EmployeeDTO{}, &costing.RecipeDTO{},
		&orderrepo.OrderDTO{}, &orderrepo.OrderLineDTO{}, &orderrepo.OrderRequirementDTO{}, &orderrepo.OrderJobDTO{},
		&jobrepo.JobDTO{}, &jobrepo.LineDTO{}, &jobrepo.WastageDTO{},
		&preparatoryrepo.RecordDTO{}, &preparatoryrepo.LineDTO{},
		&machinerepo.MachineDTO{}, &machinerepo.HeadDTO{},
		&materialrepo.MaterialDTO{}, &materialrepo.MovementDTO{},
		&shiftrepo.ReportDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models()...)
}
