// Package rider provides the Rider aggregate: a courier who executes
// deliveries. Riders are referenced by deliveries via their ID; assignment
// requires the rider to exist and be active.
package rider

import (
	"errors"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
)

var (
	// ErrNameIsRequired is returned when attempting to create a rider without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a rider without a phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")
)

// Rider represents a courier registered on the platform.
// Only active riders may be assigned new deliveries; deactivation takes a
// rider out of rotation without touching deliveries already in flight.
type Rider struct {
	id     kernel.UUID
	name   string
	phone  string
	active bool

	isConstructed bool
}

// NewRider creates a validated, active Rider.
// The phone number receives assignment notifications.
func NewRider(id kernel.UUID, name, phone string) (*Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}
	if phone == "" {
		return nil, ErrPhoneIsRequired
	}

	return &Rider{id: id, name: name, phone: phone, active: true, isConstructed: true}, nil
}

// RestoreRider reconstructs a Rider from persistence, preserving its active flag.
func RestoreRider(id kernel.UUID, name, phone string, active bool) (*Rider, error) {
	r, err := NewRider(id, name, phone)
	if err != nil {
		return nil, err
	}
	r.active = active
	return r, nil
}

// Validate ensures the Rider was created via NewRider.
func (r *Rider) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRiderIsNotConstructed
	}
	return nil
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID { return r.id }

// Name returns the rider's display name.
func (r *Rider) Name() string { return r.name }

// Phone returns the rider's notification phone number.
func (r *Rider) Phone() string { return r.phone }

// IsActive reports whether the rider may receive new assignments.
func (r *Rider) IsActive() bool { return r.active }

// Deactivate takes the rider out of rotation.
func (r *Rider) Deactivate() { r.active = false }

// Activate puts the rider back into rotation.
func (r *Rider) Activate() { r.active = true }
