package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand represents staff approval of a rider-created
// delivery awaiting confirmation.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	by         actor.Actor

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command to confirm a pending delivery.
func NewConfirmDeliveryCommand(deliveryID kernel.UUID, by actor.Actor) (ConfirmDeliveryCommand, error) {
	cmd := ConfirmDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setBy(by),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery to confirm.
func (c ConfirmDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// By returns the acting operator.
func (c ConfirmDeliveryCommand) By() actor.Actor {
	return c.by
}

func (c *ConfirmDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *ConfirmDeliveryCommand) setBy(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}

	c.by = by
	return nil
}
