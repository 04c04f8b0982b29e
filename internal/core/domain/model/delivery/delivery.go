package delivery

import (
	"errors"
	"fmt"
	"time"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through the NewDelivery or RestoreDelivery factory methods.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrActorNotAllowed is the sentinel wrapped by ActorNotAllowedError.
	ErrActorNotAllowed = errors.New("actor is not allowed to perform this operation")
)

// ActorNotAllowedError reports that the acting user's role or identity does
// not satisfy the constraint on the attempted operation: for example, a rider
// who is not the assigned rider, or a rider trying to resolve a pending
// confirmation.
type ActorNotAllowedError struct {
	ActorID kernel.UUID
	Reason  string
}

func (e *ActorNotAllowedError) Error() string {
	return fmt.Sprintf("%s: actor %s: %s", ErrActorNotAllowed, e.ActorID, e.Reason)
}

func (e *ActorNotAllowedError) Unwrap() error {
	return ErrActorNotAllowed
}

// Delivery is the aggregate root of one courier job from pickup to dropoff.
// It owns the status lifecycle and enforces, in one place, which actor may
// move the delivery between statuses.
//
// Invariants:
//   - Status transitions follow the centralized transition table.
//   - Statuses past assignment always carry a rider; Created and Rejected never do.
//   - The delivery fee is never negative; a zero fee means the delivery is unbilled.
//   - deliveredAt is set exactly when the delivery enters Delivered.
type Delivery struct {
	id                 kernel.UUID
	businessID         kernel.UUID
	pickup             Waypoint
	dropoff            Waypoint
	packageDescription string
	status             Status
	assignedRiderID    *kernel.UUID
	deliveryFee        decimal.Decimal
	createdBy          kernel.UUID
	createdAt          time.Time
	deliveredAt        *time.Time

	isConstructed bool
}

// NewDelivery creates a delivery on behalf of the given actor.
// The initial status depends on the creator's role: staff and admins create
// unassigned deliveries in Created; riders create self-assigned deliveries in
// PendingConfirmation awaiting staff approval.
func NewDelivery(
	id, businessID kernel.UUID,
	pickup, dropoff Waypoint,
	packageDescription string,
	deliveryFee decimal.Decimal,
	creator actor.Actor,
	now time.Time,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		businessID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		creator.Validate(),
	); err != nil {
		return nil, err
	}
	if packageDescription == "" {
		return nil, errs.NewValueIsRequiredError("packageDescription")
	}
	if deliveryFee.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("%s is negative", deliveryFee))
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("now")
	}

	d := &Delivery{
		id:                 id,
		businessID:         businessID,
		pickup:             pickup,
		dropoff:            dropoff,
		packageDescription: packageDescription,
		deliveryFee:        deliveryFee,
		createdBy:          creator.ID(),
		createdAt:          now,
		isConstructed:      true,
	}

	if creator.IsRider() {
		riderID := creator.ID()
		d.status = StatusPendingConfirmation
		d.assignedRiderID = &riderID
	} else {
		d.status = StatusCreated
	}

	return d, nil
}

// RestoreDelivery reconstructs a delivery from persistence and re-checks the
// status/rider consistency invariant.
func RestoreDelivery(
	id, businessID kernel.UUID,
	pickup, dropoff Waypoint,
	packageDescription string,
	deliveryFee decimal.Decimal,
	status Status,
	assignedRiderID *kernel.UUID,
	createdBy kernel.UUID,
	createdAt time.Time,
	deliveredAt *time.Time,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		businessID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		status.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	if deliveryFee.IsNegative() {
		return nil, errs.NewValueIsInvalidError("deliveryFee")
	}
	if status.requiresRider() != (assignedRiderID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("assignedRiderID",
			fmt.Errorf("status %s and rider assignment are inconsistent", status))
	}

	return &Delivery{
		id:                 id,
		businessID:         businessID,
		pickup:             pickup,
		dropoff:            dropoff,
		packageDescription: packageDescription,
		status:             status,
		assignedRiderID:    assignedRiderID,
		deliveryFee:        deliveryFee,
		createdBy:          createdBy,
		createdAt:          createdAt,
		deliveredAt:        deliveredAt,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Delivery was created via a constructor.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by identifier.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID { return d.id }

// BusinessID returns the owning business.
func (d *Delivery) BusinessID() kernel.UUID { return d.businessID }

// Pickup returns the pickup waypoint.
func (d *Delivery) Pickup() Waypoint { return d.pickup }

// Dropoff returns the dropoff waypoint.
func (d *Delivery) Dropoff() Waypoint { return d.dropoff }

// PackageDescription returns the free-text description of the package.
func (d *Delivery) PackageDescription() string { return d.packageDescription }

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status { return d.status }

// AssignedRider returns the assigned rider's ID, or nil when unassigned.
func (d *Delivery) AssignedRider() *kernel.UUID { return d.assignedRiderID }

// DeliveryFee returns the agreed fee. Zero means the delivery is unbilled.
func (d *Delivery) DeliveryFee() decimal.Decimal { return d.deliveryFee }

// HasFee reports whether the delivery carries a positive fee.
func (d *Delivery) HasFee() bool { return d.deliveryFee.IsPositive() }

// CreatedBy returns the actor that created the delivery.
func (d *Delivery) CreatedBy() kernel.UUID { return d.createdBy }

// CreatedAt returns the creation time.
func (d *Delivery) CreatedAt() time.Time { return d.createdAt }

// DeliveredAt returns the completion time, or nil before delivery.
func (d *Delivery) DeliveredAt() *time.Time { return d.deliveredAt }

// Assign moves a Created delivery to Assigned with the given rider.
// Only staff/admin may assign. Deliveries awaiting confirmation must go
// through Confirm instead.
//
// The aggregate-level check is a precondition only: the persistence layer
// performs the assignment as an atomic conditional update so concurrent
// assigns produce exactly one winner.
func (d *Delivery) Assign(riderID kernel.UUID, by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if !by.IsOperator() {
		return &ActorNotAllowedError{ActorID: by.ID(), Reason: "only staff or admin may assign riders"}
	}
	if err := riderID.Validate(); err != nil {
		return err
	}
	if d.status != StatusCreated {
		return &InvalidStateTransitionError{
			Current: d.status,
			Target:  StatusAssigned,
			Allowed: d.status.OperatorAllowedNext(),
		}
	}

	d.status = StatusAssigned
	d.assignedRiderID = &riderID
	return nil
}

// Confirm approves a rider-created delivery: PendingConfirmation becomes
// Assigned and the self-assigned rider is preserved. Staff/admin only.
func (d *Delivery) Confirm(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if !by.IsOperator() {
		return &ActorNotAllowedError{ActorID: by.ID(), Reason: "only staff or admin may confirm deliveries"}
	}
	if d.status != StatusPendingConfirmation {
		return &InvalidStateTransitionError{
			Current: d.status,
			Target:  StatusAssigned,
			Allowed: d.status.OperatorAllowedNext(),
		}
	}

	d.status = StatusAssigned
	return nil
}

// Reject declines a rider-created delivery: PendingConfirmation becomes
// Rejected and the self-assignment is cleared. Staff/admin only.
func (d *Delivery) Reject(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if !by.IsOperator() {
		return &ActorNotAllowedError{ActorID: by.ID(), Reason: "only staff or admin may reject deliveries"}
	}
	if d.status != StatusPendingConfirmation {
		return &InvalidStateTransitionError{
			Current: d.status,
			Target:  StatusRejected,
			Allowed: d.status.OperatorAllowedNext(),
		}
	}

	d.status = StatusRejected
	d.assignedRiderID = nil
	return nil
}

// TransitionTo advances the delivery through its execution phase:
// PickedUp, InTransit, Delivered, or Failed. Only the assigned rider may
// trigger these moves, and the reported allowed set is the set of transitions
// available to that rider, which is empty outside the execution phase.
// Entering Delivered records the completion time.
func (d *Delivery) TransitionTo(target Status, by actor.Actor, now time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if !by.IsRider() {
		return &ActorNotAllowedError{ActorID: by.ID(), Reason: "only the assigned rider may update delivery progress"}
	}
	if d.assignedRiderID == nil || !d.assignedRiderID.IsEqual(by.ID()) {
		return &ActorNotAllowedError{ActorID: by.ID(), Reason: "actor is not the assigned rider"}
	}

	allowed := d.status.RiderAllowedNext()
	if !statusIn(target, allowed) {
		return &InvalidStateTransitionError{Current: d.status, Target: target, Allowed: allowed}
	}

	d.status = target
	if target == StatusDelivered {
		d.deliveredAt = &now
	}
	return nil
}

// SetFee corrects the delivery fee. Staff/admin only; the fee must stay
// non-negative, and zero marks the delivery unbilled. Whether the correction
// may still reach the ledger is decided where billing state is known.
func (d *Delivery) SetFee(fee decimal.Decimal, by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if !by.IsOperator() {
		return &ActorNotAllowedError{ActorID: by.ID(), Reason: "only staff or admin may set delivery fees"}
	}
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("fee", fmt.Errorf("%s is negative", fee))
	}

	d.deliveryFee = fee
	return nil
}
