package jobs

import (
	"fmt"
	"log/slog"

	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	pendingConfirmationJob *PendingConfirmationJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	staleHandler queries.GetStalePendingConfirmationsQueryHandler,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		pendingConfirmationJob: NewPendingConfirmationJob(staleHandler, dispatcher, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.pendingConfirmationJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending confirmation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pendingConfirmationJob.Stop()
}
