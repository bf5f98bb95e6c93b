// Package jobs provides scheduled background tasks for the production floor.
//
// Jobs are cron-based (github.com/robfig/cron/v3, with a seconds field) and run read-only
// queries; they never change state.
//
// # Available Jobs
//
// LowStockAlertJob logs a warning per raw material whose stock is below its minimum.
// It runs hourly unless LOW_STOCK_SCHEDULE overrides the expression.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(lowStockHandler, cfg.LowStockSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried at the next tick. An invalid schedule fails StartAll.
package jobs
