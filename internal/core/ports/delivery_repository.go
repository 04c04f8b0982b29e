// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and outbound gateways.
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// AssignIfCreated performs the assignment as one atomic conditional
	// write: the delivery moves to Assigned with the given rider only if its
	// status is still Created at write time. Returns false when another
	// writer won the race or the delivery is not assignable, without error.
	//
	// This is the compare-and-swap required for concurrent assignment: two
	// staff actors assigning the same delivery produce exactly one winner.
	AssignIfCreated(ctx context.Context, id, riderID kernel.UUID) (bool, error)

	// GetUnbilledWithFee retrieves the backfill set for invoice generation:
	// deliveries of the business created within [from, to] that carry a
	// positive fee but have no charge row.
	GetUnbilledWithFee(ctx context.Context, businessID kernel.UUID, from, to time.Time) ([]*delivery.Delivery, error)
}

// EventRepository defines the persistence contract for the append-only
// delivery audit trail. Events are only ever inserted.
type EventRepository interface {
	// Append inserts one audit event. Called in the same transaction as the
	// status write it records.
	Append(ctx context.Context, event *delivery.Event) error

	// ListByDelivery returns all events for a delivery, oldest first.
	ListByDelivery(ctx context.Context, deliveryID kernel.UUID) ([]*delivery.Event, error)
}
