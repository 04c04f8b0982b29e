// Package deliveryrepo implements persistence for the delivery aggregate and
// its append-only event log, handling the conversion between domain entities
// and database rows.
package deliveryrepo

import (
	"time"

	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates, indexed for lookup by business, status, and rider.
type DeliveryDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BusinessID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	Pickup             WaypointDTO     `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff            WaypointDTO     `gorm:"embedded;embeddedPrefix:dropoff_"`
	PackageDescription string          `gorm:"not null"`
	Status             int             `gorm:"index;not null"`
	AssignedRiderID    *uuid.UUID      `gorm:"type:uuid;index"`
	DeliveryFee        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedBy          uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt          time.Time       `gorm:"index;not null"`
	DeliveredAt        *time.Time
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// WaypointDTO represents the embedded pickup/dropoff contact columns.
type WaypointDTO struct {
	Name    string `gorm:"not null"`
	Phone   string `gorm:"not null"`
	Address string `gorm:"not null"`
}

// EventDTO represents one append-only audit row per delivery transition.
type EventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index;not null"`
	Status     int       `gorm:"not null"`
	Note       string
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time `gorm:"index;not null"`
}

// TableName specifies the database table name for delivery events.
func (EventDTO) TableName() string {
	return "delivery_events"
}

// fromDomain converts a delivery aggregate to its database representation.
func fromDomain(d *delivery.Delivery) DeliveryDTO {
	var riderID *uuid.UUID
	if id := d.AssignedRider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	return DeliveryDTO{
		ID:         d.ID().Bytes(),
		BusinessID: d.BusinessID().Bytes(),
		Pickup: WaypointDTO{
			Name:    d.Pickup().Name(),
			Phone:   d.Pickup().Phone(),
			Address: d.Pickup().Address(),
		},
		Dropoff: WaypointDTO{
			Name:    d.Dropoff().Name(),
			Phone:   d.Dropoff().Phone(),
			Address: d.Dropoff().Address(),
		},
		PackageDescription: d.PackageDescription(),
		Status:             int(d.Status()),
		AssignedRiderID:    riderID,
		DeliveryFee:        d.DeliveryFee(),
		CreatedBy:          d.CreatedBy().Bytes(),
		CreatedAt:          d.CreatedAt(),
		DeliveredAt:        d.DeliveredAt(),
	}
}

// toDomain converts a database row to a delivery aggregate using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.AssignedRiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.AssignedRiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	pickup, err := delivery.NewWaypoint(dto.Pickup.Name, dto.Pickup.Phone, dto.Pickup.Address)
	if err != nil {
		return nil, err
	}

	dropoff, err := delivery.NewWaypoint(dto.Dropoff.Name, dto.Dropoff.Phone, dto.Dropoff.Address)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id, businessID,
		pickup, dropoff,
		dto.PackageDescription,
		dto.DeliveryFee,
		delivery.Status(dto.Status),
		riderID,
		createdBy,
		dto.CreatedAt,
		dto.DeliveredAt,
	)
}

// eventFromDomain converts an audit event to its database representation.
func eventFromDomain(e *delivery.Event) EventDTO {
	return EventDTO{
		ID:         e.ID().Bytes(),
		DeliveryID: e.DeliveryID().Bytes(),
		Status:     int(e.Status()),
		Note:       e.Note(),
		ActorID:    e.ActorID().Bytes(),
		CreatedAt:  e.CreatedAt(),
	}
}

// eventToDomain converts a database row to an audit event.
func eventToDomain(dto EventDTO) (*delivery.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreEvent(id, deliveryID, delivery.Status(dto.Status), dto.Note, actorID, dto.CreatedAt)
}
