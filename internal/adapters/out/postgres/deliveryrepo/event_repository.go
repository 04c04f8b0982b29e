package deliveryrepo

import (
	"context"

	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormEventRepository implements the append-only audit log for delivery
// transitions. Events are never updated or deleted.
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM event repository.
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Append saves a new audit event.
func (r *GormEventRepository) Append(ctx context.Context, event *delivery.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := eventFromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByDelivery retrieves all events for a delivery in chronological order.
func (r *GormEventRepository) ListByDelivery(ctx context.Context, deliveryID kernel.UUID) ([]*delivery.Event, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID.Bytes()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*delivery.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := eventToDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, nil
}
