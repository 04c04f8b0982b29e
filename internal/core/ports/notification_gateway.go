package ports

import "context"

// NotificationGateway is the outbound SMS contract. Transport details are an
// external concern; the core only knows send-or-fail.
type NotificationGateway interface {
	Send(ctx context.Context, phone, text string) error
}

// NotificationDispatcher delivers notifications best-effort, strictly after
// the state-changing write has committed. Dispatch never blocks and never
// reports failure to the caller; a failed send is logged and dropped.
type NotificationDispatcher interface {
	Dispatch(phone, text string)
}
