package services

import (
	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/delivery"
)

// Action is a named capability a command handler asks the policy about.
type Action string

const (
	ActionCreateDelivery  Action = "delivery.create"
	ActionAssignRider     Action = "delivery.assign"
	ActionResolvePending  Action = "delivery.resolve_pending"
	ActionUpdateProgress  Action = "delivery.update_progress"
	ActionSetDeliveryFee  Action = "delivery.set_fee"
	ActionGenerateInvoice Action = "invoice.generate"
)

// AccessPolicy is the single place mapping roles to capabilities, so no
// handler re-implements its own role check. Identity-level constraints (the
// acting rider must be the assigned rider) stay inside the Delivery
// aggregate, which owns that state.
type AccessPolicy struct{}

// NewAccessPolicy creates the capability policy.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// roleActions maps each action to the roles allowed to perform it.
func roleActions() map[Action][]actor.Role {
	return map[Action][]actor.Role{
		ActionCreateDelivery:  {actor.RoleAdmin, actor.RoleStaff, actor.RoleRider},
		ActionAssignRider:     {actor.RoleAdmin, actor.RoleStaff},
		ActionResolvePending:  {actor.RoleAdmin, actor.RoleStaff},
		ActionUpdateProgress:  {actor.RoleRider},
		ActionSetDeliveryFee:  {actor.RoleAdmin, actor.RoleStaff},
		ActionGenerateInvoice: {actor.RoleAdmin, actor.RoleStaff},
	}
}

// Authorize returns nil when the actor's role permits the action, and an
// ActorNotAllowedError otherwise.
func (p AccessPolicy) Authorize(by actor.Actor, action Action) error {
	if err := by.Validate(); err != nil {
		return err
	}

	for _, role := range roleActions()[action] {
		if by.Role() == role {
			return nil
		}
	}

	return &delivery.ActorNotAllowedError{
		ActorID: by.ID(),
		Reason:  "role " + by.Role().String() + " may not perform " + string(action),
	}
}
