package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents a rider moving their delivery
// forward through pickup, transit, and completion.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	target     delivery.Status
	note       string
	by         actor.Actor

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to record delivery progress.
// The note is optional and lands in the audit trail.
func NewUpdateDeliveryStatusCommand(
	deliveryID kernel.UUID,
	target delivery.Status,
	note string,
	by actor.Actor,
) (UpdateDeliveryStatusCommand, error) {
	cmd := UpdateDeliveryStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setTarget(target),
		cmd.setBy(by),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	cmd.note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// DeliveryID returns the delivery to update.
func (c UpdateDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Target returns the requested status.
func (c UpdateDeliveryStatusCommand) Target() delivery.Status {
	return c.target
}

// Note returns the optional progress note.
func (c UpdateDeliveryStatusCommand) Note() string {
	return c.note
}

// By returns the acting rider.
func (c UpdateDeliveryStatusCommand) By() actor.Actor {
	return c.by
}

func (c *UpdateDeliveryStatusCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setTarget(target delivery.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *UpdateDeliveryStatusCommand) setBy(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}

	c.by = by
	return nil
}
