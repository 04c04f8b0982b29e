package actor

import (
	"errors"

	"courierhub/internal/core/domain/model/kernel"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through the NewActor factory method.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor identifies who is performing an operation: a validated (id, role)
// pair supplied by the external authorization collaborator. Every command
// carries an Actor so the transition table and capability checks can be
// enforced in one place.
type Actor struct {
	id   kernel.UUID
	role Role

	isConstructed bool
}

// NewActor creates a validated Actor from a resolved identity and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, role: role, isConstructed: true}, nil
}

// Validate ensures the Actor was created via NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the actor's unique identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's resolved role.
func (a Actor) Role() Role {
	return a.role
}

// IsOperator reports whether the actor is staff or admin.
func (a Actor) IsOperator() bool {
	return a.role.IsOperator()
}

// IsRider reports whether the actor is a rider.
func (a Actor) IsRider() bool {
	return a.role == RoleRider
}
