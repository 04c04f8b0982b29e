package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// pendingStaleAfter is how long a rider-created delivery may sit awaiting
// confirmation before the ops contact gets a reminder.
const pendingStaleAfter = time.Hour

// PendingConfirmationJob periodically looks for deliveries stuck in
// PendingConfirmation and reminds the business ops contact. Read-only plus
// fire-and-forget SMS; it never mutates delivery state.
type PendingConfirmationJob struct {
	handler    queries.GetStalePendingConfirmationsQueryHandler
	dispatcher ports.NotificationDispatcher
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewPendingConfirmationJob creates the reminder job, scheduled every 15 minutes.
func NewPendingConfirmationJob(
	handler queries.GetStalePendingConfirmationsQueryHandler,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) *PendingConfirmationJob {
	return &PendingConfirmationJob{
		handler:    handler,
		dispatcher: dispatcher,
		cron:       cron.New(),
		logger:     logger.With("component", "pending_confirmation_job"),
	}
}

// Start begins the reminder job to run every 15 minutes.
func (j *PendingConfirmationJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending confirmation job started (running every 15 minutes)")
	return nil
}

// Stop stops the reminder job.
func (j *PendingConfirmationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending confirmation job stopped")
}

func (j *PendingConfirmationJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetStalePendingConfirmationsQuery(pendingStaleAfter)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending confirmation job misconfigured", "error", err)
		return
	}

	stale, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending confirmation job failed", "error", err)
		return
	}

	for _, entry := range stale {
		if entry.OpsPhone == "" {
			continue
		}
		j.dispatcher.Dispatch(entry.OpsPhone, fmt.Sprintf(
			"Delivery %s is still awaiting confirmation since %s",
			entry.DeliveryID, entry.CreatedAt.Format(time.RFC3339)))
	}

	if len(stale) > 0 {
		j.logger.InfoContext(ctx, "Pending confirmation reminders dispatched", "count", len(stale))
	}
}
