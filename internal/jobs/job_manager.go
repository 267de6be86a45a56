package jobs

import (
	"fmt"
	"log/slog"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/application/usecases/commands"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	topupReconciliationJob *TopupReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the handlers and collaborators the jobs run against.
func NewJobManager(
	uowFactory commands.TopupUoWFactory,
	payments ports.PaymentCollaborator,
	completeTopupHandler commands.CompleteTopupCommandHandler,
	reconciliationSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		topupReconciliationJob: NewTopupReconciliationJob(
			uowFactory, payments, completeTopupHandler, reconciliationSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.topupReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start topup reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.topupReconciliationJob.Stop()
}
