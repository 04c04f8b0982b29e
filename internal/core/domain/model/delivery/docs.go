// Package delivery provides the domain model for the courier delivery
// lifecycle. It implements the Delivery aggregate root together with the
// Status state machine and the append-only transition Event.
//
// The package includes:
//   - Delivery: the aggregate root owning identity, waypoints, fee, and lifecycle
//   - Status: a closed enum with one centralized transition table
//   - Event: one immutable audit row per successful transition
//   - Waypoint: the pickup/dropoff contact-and-address value object
//
// Key business rules:
//   - Staff-created deliveries start in Created; rider-created deliveries
//     start in PendingConfirmation with the creator self-assigned
//   - Staff/admin resolve assignment and confirmation; the assigned rider
//     owns PickedUp, InTransit, Delivered, and Failed
//   - Delivered, Failed, and Rejected are terminal
//
// The package follows Domain-Driven Design principles: rich domain behavior,
// encapsulation through private fields, and validating factory functions.
package delivery
