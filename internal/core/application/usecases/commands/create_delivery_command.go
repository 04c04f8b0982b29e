package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a request to register a new delivery.
// The creating actor determines the initial status: staff and admins create
// unassigned deliveries awaiting dispatch, riders create self-assigned
// deliveries awaiting staff confirmation.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID         kernel.UUID
	businessID         kernel.UUID
	pickup             delivery.Waypoint
	dropoff            delivery.Waypoint
	packageDescription string
	deliveryFee        decimal.Decimal
	by                 actor.Actor

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// The fee may be zero; a negative fee is rejected.
func NewCreateDeliveryCommand(
	deliveryID, businessID kernel.UUID,
	pickup, dropoff delivery.Waypoint,
	packageDescription string,
	deliveryFee decimal.Decimal,
	by actor.Actor,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setBusinessID(businessID),
		cmd.setWaypoints(pickup, dropoff),
		cmd.setPackageDescription(packageDescription),
		cmd.setDeliveryFee(deliveryFee),
		cmd.setBy(by),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier for the new delivery.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// BusinessID returns the business the delivery belongs to.
func (c CreateDeliveryCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// Pickup returns the pickup waypoint.
func (c CreateDeliveryCommand) Pickup() delivery.Waypoint {
	return c.pickup
}

// Dropoff returns the dropoff waypoint.
func (c CreateDeliveryCommand) Dropoff() delivery.Waypoint {
	return c.dropoff
}

// PackageDescription returns the package description.
func (c CreateDeliveryCommand) PackageDescription() string {
	return c.packageDescription
}

// DeliveryFee returns the fee, possibly zero.
func (c CreateDeliveryCommand) DeliveryFee() decimal.Decimal {
	return c.deliveryFee
}

// By returns the creating actor.
func (c CreateDeliveryCommand) By() actor.Actor {
	return c.by
}

func (c *CreateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CreateDeliveryCommand) setBusinessID(businessID kernel.UUID) error {
	if err := businessID.Validate(); err != nil {
		return err
	}

	c.businessID = businessID
	return nil
}

func (c *CreateDeliveryCommand) setWaypoints(pickup, dropoff delivery.Waypoint) error {
	if err := errors.Join(pickup.Validate(), dropoff.Validate()); err != nil {
		return err
	}

	c.pickup = pickup
	c.dropoff = dropoff
	return nil
}

func (c *CreateDeliveryCommand) setPackageDescription(packageDescription string) error {
	if packageDescription == "" {
		return errs.NewValueIsRequiredError("packageDescription")
	}

	c.packageDescription = packageDescription
	return nil
}

func (c *CreateDeliveryCommand) setDeliveryFee(deliveryFee decimal.Decimal) error {
	if deliveryFee.IsNegative() {
		return errs.NewValueIsInvalidError("deliveryFee")
	}

	c.deliveryFee = deliveryFee
	return nil
}

func (c *CreateDeliveryCommand) setBy(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}

	c.by = by
	return nil
}
