// Package queries contains the read side: raw-SQL handlers that bypass the
// domain aggregates and return flat response models.
package queries

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var ErrGetDeliveryTimelineQueryIsNotConstructed = errors.New(
	"GetDeliveryTimelineQuery must be created via NewGetDeliveryTimelineQuery constructor",
)

// GetDeliveryTimelineQuery retrieves the full audit trail of one delivery,
// oldest event first.
type GetDeliveryTimelineQuery struct {
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryTimelineQuery creates a query for a delivery's event log.
func NewGetDeliveryTimelineQuery(deliveryID kernel.UUID) (GetDeliveryTimelineQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryTimelineQuery{}, err
	}

	return GetDeliveryTimelineQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryTimelineQueryIsNotConstructed)
}

// DeliveryID returns the delivery whose timeline is requested.
func (q GetDeliveryTimelineQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// GetDeliveryTimelineQueryResponse represents one audit event in the timeline.
type GetDeliveryTimelineQueryResponse struct {
	ID        kernel.UUID
	Status    delivery.Status
	Note      string
	ActorID   kernel.UUID
	CreatedAt time.Time
}
