package delivery

import (
	"errors"

	"courierhub/internal/pkg/errs"
)

// ErrWaypointIsNotConstructed is returned when a Waypoint instance was not
// created through the NewWaypoint factory method.
var ErrWaypointIsNotConstructed = errors.New("Waypoint must be created via NewWaypoint constructor")

// Waypoint is a value object describing one end of a delivery: a contact
// name, a phone number for notifications, and a street address. Every
// delivery carries two waypoints, pickup and dropoff.
type Waypoint struct {
	name    string
	phone   string
	address string

	isConstructed bool
}

// NewWaypoint creates a validated Waypoint. Name, phone, and address are all
// required: the name labels invoice lines, the phone receives notifications,
// and the address directs the rider.
func NewWaypoint(name, phone, address string) (Waypoint, error) {
	if name == "" {
		return Waypoint{}, errs.NewValueIsRequiredError("contact name")
	}
	if phone == "" {
		return Waypoint{}, errs.NewValueIsRequiredError("contact phone")
	}
	if address == "" {
		return Waypoint{}, errs.NewValueIsRequiredError("address")
	}

	return Waypoint{name: name, phone: phone, address: address, isConstructed: true}, nil
}

// Validate ensures the Waypoint was created via NewWaypoint.
func (w Waypoint) Validate() error {
	if !w.isConstructed {
		return ErrWaypointIsNotConstructed
	}
	return nil
}

// Name returns the contact name at this waypoint.
func (w Waypoint) Name() string {
	return w.name
}

// Phone returns the contact phone number at this waypoint.
func (w Waypoint) Phone() string {
	return w.phone
}

// Address returns the street address of this waypoint.
func (w Waypoint) Address() string {
	return w.address
}

// IsEqual compares two waypoints field by field.
func (w Waypoint) IsEqual(other Waypoint) bool {
	return w.name == other.name && w.phone == other.phone && w.address == other.address
}
