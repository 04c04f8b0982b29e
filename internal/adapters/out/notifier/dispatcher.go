package notifier

import (
	"context"
	"log/slog"
	"time"

	"courierhub/internal/core/ports"
)

const defaultSendTimeout = 10 * time.Second

// AsyncDispatcher sends notifications in the background. Failures are logged
// and otherwise dropped: a dead SMS gateway must not fail or delay the state
// change that triggered the message.
type AsyncDispatcher struct {
	gateway ports.NotificationGateway
	logger  *slog.Logger
	timeout time.Duration
}

// NewAsyncDispatcher creates a dispatcher over the given gateway.
func NewAsyncDispatcher(gateway ports.NotificationGateway, logger *slog.Logger) *AsyncDispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &AsyncDispatcher{
		gateway: gateway,
		logger:  logger,
		timeout: defaultSendTimeout,
	}
}

// Dispatch sends the message on a background goroutine and returns
// immediately. Callers invoke it only after their transaction commits.
func (d *AsyncDispatcher) Dispatch(phone string, text string) {
	if phone == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.gateway.Send(ctx, phone, text); err != nil {
			d.logger.Error("notification send failed",
				slog.String("phone", phone),
				slog.Any("error", err))
		}
	}()
}
