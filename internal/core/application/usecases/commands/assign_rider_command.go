package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand represents a request to dispatch a delivery to a rider.
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	riderID    kernel.UUID
	by         actor.Actor

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand creates a command to assign a rider to a delivery.
func NewAssignRiderCommand(deliveryID, riderID kernel.UUID, by actor.Actor) (AssignRiderCommand, error) {
	cmd := AssignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setRiderID(riderID),
		cmd.setBy(by),
	); err != nil {
		return AssignRiderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

// DeliveryID returns the delivery to assign.
func (c AssignRiderCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// RiderID returns the rider receiving the delivery.
func (c AssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// By returns the acting operator.
func (c AssignRiderCommand) By() actor.Actor {
	return c.by
}

func (c *AssignRiderCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *AssignRiderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *AssignRiderCommand) setBy(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}

	c.by = by
	return nil
}
