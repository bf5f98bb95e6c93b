package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	lowStockAlertJob *LowStockAlertJob
}

// NewJobManager wires the jobs to their query handlers. lowStockSchedule is a cron expression
// with seconds.
func NewJobManager(lowStock LowStockReader, lowStockSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		lowStockAlertJob: NewLowStockAlertJob(lowStock, lowStockSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.lowStockAlertJob.Start(); err != nil {
		return fmt.Errorf("failed to start low stock alert job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.lowStockAlertJob.Stop()
}
