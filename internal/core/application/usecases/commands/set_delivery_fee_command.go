package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSetDeliveryFeeCommandIsNotConstructed = errors.New(
	"SetDeliveryFeeCommand must be created via NewSetDeliveryFeeCommand constructor",
)

// SetDeliveryFeeCommand represents a fee correction on a delivery.
// A zero fee marks the delivery unbilled and removes its charge.
type SetDeliveryFeeCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	fee        decimal.Decimal
	by         actor.Actor

	guard guard.ConstructorGuard
}

// NewSetDeliveryFeeCommand creates a command to correct a delivery fee.
func NewSetDeliveryFeeCommand(deliveryID kernel.UUID, fee decimal.Decimal, by actor.Actor) (SetDeliveryFeeCommand, error) {
	cmd := SetDeliveryFeeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setFee(fee),
		cmd.setBy(by),
	); err != nil {
		return SetDeliveryFeeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDeliveryFeeCommand) Validate() error {
	return c.guard.Validate(ErrSetDeliveryFeeCommandIsNotConstructed)
}

// DeliveryID returns the delivery whose fee changes.
func (c SetDeliveryFeeCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Fee returns the corrected fee, possibly zero.
func (c SetDeliveryFeeCommand) Fee() decimal.Decimal {
	return c.fee
}

// By returns the acting operator.
func (c SetDeliveryFeeCommand) By() actor.Actor {
	return c.by
}

func (c *SetDeliveryFeeCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *SetDeliveryFeeCommand) setFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return errs.NewValueIsInvalidError("fee")
	}

	c.fee = fee
	return nil
}

func (c *SetDeliveryFeeCommand) setBy(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}

	c.by = by
	return nil
}
