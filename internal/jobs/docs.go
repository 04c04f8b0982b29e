// Package jobs provides scheduled background tasks.
//
// Jobs run on github.com/robfig/cron/v3 schedules and are coordinated by
// JobManager:
//
//	jobManager := jobs.NewJobManager(staleHandler, dispatcher, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// PendingConfirmationJob runs every 15 minutes, finds rider-created
// deliveries stuck awaiting confirmation for over an hour, and sends the
// business ops contact a reminder SMS. It is read-only with respect to
// delivery state; reminders go through the fire-and-forget notification
// dispatcher.
package jobs
