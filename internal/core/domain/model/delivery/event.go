package delivery

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not created
// through the NewEvent factory method.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// Event is one row of the append-only audit trail: which actor moved which
// delivery into which status, when, and with what note. Events are never
// mutated or deleted; every successful transition appends exactly one.
type Event struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	status     Status
	note       string
	actorID    kernel.UUID
	createdAt  time.Time

	isConstructed bool
}

// NewEvent creates a validated audit event for a delivery transition.
// The note is optional; everything else is required.
func NewEvent(id, deliveryID kernel.UUID, status Status, note string, actorID kernel.UUID, createdAt time.Time) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		deliveryID.Validate(),
		status.Validate(),
		actorID.Validate(),
	); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Event{
		id:            id,
		deliveryID:    deliveryID,
		status:        status,
		note:          note,
		actorID:       actorID,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs an Event from persistence without re-running
// creation-time checks beyond basic validity.
func RestoreEvent(id, deliveryID kernel.UUID, status Status, note string, actorID kernel.UUID, createdAt time.Time) (*Event, error) {
	return NewEvent(id, deliveryID, status, note, actorID, createdAt)
}

// Validate ensures the Event was created via NewEvent.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID { return e.id }

// DeliveryID returns the delivery this event belongs to.
func (e *Event) DeliveryID() kernel.UUID { return e.deliveryID }

// Status returns the status the delivery entered.
func (e *Event) Status() Status { return e.status }

// Note returns the optional free-text note attached to the transition.
func (e *Event) Note() string { return e.note }

// ActorID returns the identifier of the actor who triggered the transition.
func (e *Event) ActorID() kernel.UUID { return e.actorID }

// CreatedAt returns when the transition happened.
func (e *Event) CreatedAt() time.Time { return e.createdAt }
