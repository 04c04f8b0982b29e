package delivery

import (
	"errors"
	"fmt"
	"strings"

	"courierhub/internal/pkg/errs"
)

// ErrInvalidStateTransition is the sentinel wrapped by InvalidStateTransitionError.
// Callers classify transition failures with errors.Is against this value.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// Status represents the lifecycle state of a delivery.
// It implements a state machine with a single centralized transition table so
// the rule set lives in exactly one place, regardless of which endpoint or
// actor triggers a transition.
//
// State transitions:
//
//	Created ─────────────> Assigned ──> PickedUp ──> InTransit ──> Delivered
//	                        ^  │            │            │
//	PendingConfirmation ────┘  └──> Failed <┴────────────┘
//	       │
//	       └──> Rejected
//
// Delivered, Failed, and Rejected are terminal.
//
// Transitions out of Created and PendingConfirmation are operator moves
// (staff/admin); transitions out of Assigned, PickedUp, and InTransit belong
// to the assigned rider.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusCreated is the initial status of a staff-created delivery,
	// waiting for a rider to be assigned.
	StatusCreated

	// StatusPendingConfirmation is the initial status of a rider-created
	// delivery: the rider self-assigned and awaits staff approval.
	StatusPendingConfirmation

	// StatusAssigned indicates a rider has been assigned and approved.
	StatusAssigned

	// StatusPickedUp indicates the rider collected the package.
	StatusPickedUp

	// StatusInTransit indicates the package is on its way to the dropoff.
	StatusInTransit

	// StatusDelivered is the terminal success state.
	StatusDelivered

	// StatusFailed is the terminal state for deliveries the rider could not complete.
	StatusFailed

	// StatusRejected is the terminal state for rider-created deliveries staff declined.
	StatusRejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:             "UNKNOWN",
		StatusCreated:             "CREATED",
		StatusPendingConfirmation: "PENDING_CONFIRMATION",
		StatusAssigned:            "ASSIGNED",
		StatusPickedUp:            "PICKED_UP",
		StatusInTransit:           "IN_TRANSIT",
		StatusDelivered:           "DELIVERED",
		StatusFailed:              "FAILED",
		StatusRejected:            "REJECTED",
	}
}

// transitionTable is the single source of truth for legal status transitions.
// Terminal statuses map to an empty set.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		StatusCreated:             {StatusAssigned},
		StatusPendingConfirmation: {StatusAssigned, StatusRejected},
		StatusAssigned:            {StatusPickedUp, StatusFailed},
		StatusPickedUp:            {StatusInTransit, StatusFailed},
		StatusInTransit:           {StatusDelivered, StatusFailed},
		StatusDelivered:           {},
		StatusFailed:              {},
		StatusRejected:            {},
	}
}

// StatusFromString parses a status from its wire name (e.g. "PICKED_UP").
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the wire name of the status ("CREATED", "PICKED_UP", ...).
// Invalid values render as "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the Status is one of the defined lifecycle values.
func (s Status) Validate() error {
	if _, ok := transitionTable()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailed || s == StatusRejected
}

// AllowedNext returns the full set of statuses reachable from s,
// regardless of who triggers the transition. Empty for terminal statuses.
func (s Status) AllowedNext() []Status {
	return transitionTable()[s]
}

// RiderAllowedNext returns the transitions the assigned rider may trigger
// from s. Riders own the execution phase: Assigned, PickedUp, and InTransit.
// For every other status, including PendingConfirmation, the set is empty.
func (s Status) RiderAllowedNext() []Status {
	switch s {
	case StatusAssigned, StatusPickedUp, StatusInTransit:
		return transitionTable()[s]
	default:
		return nil
	}
}

// OperatorAllowedNext returns the transitions staff/admin may trigger from s:
// the assignment and confirmation phase (Created, PendingConfirmation).
func (s Status) OperatorAllowedNext() []Status {
	switch s {
	case StatusCreated, StatusPendingConfirmation:
		return transitionTable()[s]
	default:
		return nil
	}
}

// CanTransitionTo checks the transition table without applying the transition.
// Returns an InvalidStateTransitionError carrying the full allowed set when
// target is not reachable from s.
func (s Status) CanTransitionTo(target Status) error {
	for _, next := range s.AllowedNext() {
		if next == target {
			return nil
		}
	}
	return &InvalidStateTransitionError{Current: s, Target: target, Allowed: s.AllowedNext()}
}

// statusIn reports whether s is contained in the given set.
func statusIn(s Status, set []Status) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}

// requiresRider reports whether a delivery in status s must have an assigned rider.
func (s Status) requiresRider() bool {
	switch s {
	case StatusPendingConfirmation, StatusAssigned, StatusPickedUp, StatusInTransit, StatusDelivered, StatusFailed:
		return true
	default:
		return false
	}
}

// InvalidStateTransitionError reports an attempt to move a delivery to a
// status that is not reachable for the triggering actor. Allowed is the set
// of transitions that would have been legal, possibly empty.
type InvalidStateTransitionError struct {
	Current Status
	Target  Status
	Allowed []Status
}

func (e *InvalidStateTransitionError) Error() string {
	allowed := make([]string, 0, len(e.Allowed))
	for _, s := range e.Allowed {
		allowed = append(allowed, s.String())
	}
	return fmt.Sprintf("%s: cannot move delivery from %s to %s, allowed: [%s]",
		ErrInvalidStateTransition, e.Current, e.Target, strings.Join(allowed, ", "))
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}
