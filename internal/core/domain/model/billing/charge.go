package billing

import (
	"errors"
	"fmt"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrChargeIsNotConstructed is returned when a Charge instance was not
// created through the NewCharge factory method.
var ErrChargeIsNotConstructed = errors.New("Charge must be created via NewCharge constructor")

// Charge is the authoritative billable amount for exactly one delivery.
// At most one Charge exists per delivery; the persistence layer backs this
// invariant with a uniqueness constraint on the delivery ID.
//
// A charge is created when a fee-bearing delivery is created or when a fee is
// set afterwards, re-priced when the fee is edited, and removed when the fee
// is zeroed.
type Charge struct {
	id          kernel.UUID
	deliveryID  kernel.UUID
	businessID  kernel.UUID
	amount      decimal.Decimal
	description string
	createdAt   time.Time

	isConstructed bool
}

// NewCharge creates a validated Charge. The amount must be strictly positive;
// zero-fee deliveries have no charge at all.
func NewCharge(
	id, deliveryID, businessID kernel.UUID,
	amount decimal.Decimal,
	description string,
	createdAt time.Time,
) (*Charge, error) {
	if err := errors.Join(
		id.Validate(),
		deliveryID.Validate(),
		businessID.Validate(),
	); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", amount))
	}
	if description == "" {
		return nil, errs.NewValueIsRequiredError("description")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Charge{
		id:            id,
		deliveryID:    deliveryID,
		businessID:    businessID,
		amount:        amount,
		description:   description,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreCharge reconstructs a Charge from persistence.
func RestoreCharge(
	id, deliveryID, businessID kernel.UUID,
	amount decimal.Decimal,
	description string,
	createdAt time.Time,
) (*Charge, error) {
	return NewCharge(id, deliveryID, businessID, amount, description, createdAt)
}

// Validate ensures the Charge was created via NewCharge.
func (c *Charge) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrChargeIsNotConstructed
	}
	return nil
}

// ID returns the charge's unique identifier.
func (c *Charge) ID() kernel.UUID { return c.id }

// DeliveryID returns the delivery this charge bills.
func (c *Charge) DeliveryID() kernel.UUID { return c.deliveryID }

// BusinessID returns the business that owes the charge.
func (c *Charge) BusinessID() kernel.UUID { return c.businessID }

// Amount returns the billable amount.
func (c *Charge) Amount() decimal.Decimal { return c.amount }

// Description returns the human-readable charge description.
func (c *Charge) Description() string { return c.description }

// CreatedAt returns when the charge was recorded.
func (c *Charge) CreatedAt() time.Time { return c.createdAt }

// Reprice changes the charge amount after a fee correction.
// The new amount must remain strictly positive; zeroing a fee deletes the
// charge instead of repricing it.
func (c *Charge) Reprice(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", amount))
	}
	c.amount = amount
	return nil
}
