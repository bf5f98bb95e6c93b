package jobs

import (
	"context"
	"log/slog"

	"textile/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultLowStockSchedule runs the alert at minute zero of every hour.
const DefaultLowStockSchedule = "0 0 * * * *"

// LowStockReader finds raw materials below their minimum stock.
type LowStockReader interface {
	Handle(ctx context.Context, query queries.GetLowStockMaterialsQuery) ([]queries.GetLowStockMaterialsQueryResponse, error)
}

// LowStockAlertJob periodically logs a warning for every raw material whose stock fell below
// its minimum, so purchasing sees it before an order approval fails on insufficient stock.
type LowStockAlertJob struct {
	reader   LowStockReader
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLowStockAlertJob creates the alert job. schedule is a cron expression with seconds;
// empty means DefaultLowStockSchedule.
func NewLowStockAlertJob(reader LowStockReader, schedule string, logger *slog.Logger) *LowStockAlertJob {
	if schedule == "" {
		schedule = DefaultLowStockSchedule
	}
	return &LowStockAlertJob{
		reader:   reader,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "low_stock_alert_job"),
	}
}

// Run checks stock once and returns the number of materials below minimum.
func (j *LowStockAlertJob) Run(ctx context.Context) (int, error) {
	materials, err := j.reader.Handle(ctx, queries.NewGetLowStockMaterialsQuery())
	if err != nil {
		return 0, err
	}
	for _, m := range materials {
		j.logger.WarnContext(ctx, "Raw material below minimum stock",
			"material_id", m.ID.String(),
			"name", m.Name,
			"category", m.Category,
			"stock_kg", m.Stock,
			"min_stock_kg", m.MinStock,
			"shortfall_kg", m.Shortfall())
	}
	return len(materials), nil
}

func (j *LowStockAlertJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Low stock alert job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Low stock alert job started", "schedule", j.schedule)
	return nil
}

func (j *LowStockAlertJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Low stock alert job stopped")
}
