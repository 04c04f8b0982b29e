package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var ErrRejectDeliveryCommandIsNotConstructed = errors.New(
	"RejectDeliveryCommand must be created via NewRejectDeliveryCommand constructor",
)

// RejectDeliveryCommand represents staff rejection of a rider-created
// delivery awaiting confirmation.
type RejectDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	reason     string
	by         actor.Actor

	guard guard.ConstructorGuard
}

// NewRejectDeliveryCommand creates a command to reject a pending delivery.
// The reason is optional and lands in the audit trail.
func NewRejectDeliveryCommand(deliveryID kernel.UUID, reason string, by actor.Actor) (RejectDeliveryCommand, error) {
	cmd := RejectDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setBy(by),
	); err != nil {
		return RejectDeliveryCommand{}, err
	}
	cmd.reason = reason

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRejectDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery to reject.
func (c RejectDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Reason returns the optional rejection reason.
func (c RejectDeliveryCommand) Reason() string {
	return c.reason
}

// By returns the acting operator.
func (c RejectDeliveryCommand) By() actor.Actor {
	return c.by
}

func (c *RejectDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *RejectDeliveryCommand) setBy(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}

	c.by = by
	return nil
}
