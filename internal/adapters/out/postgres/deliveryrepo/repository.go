package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery to the database. The update writes every
// column so fields cleared in the domain, such as a rider removed on
// rejection, end up NULL.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AssignIfCreated atomically moves a delivery from CREATED to ASSIGNED with
// the given rider. Returns false without error when the delivery was no
// longer in CREATED, which means a concurrent assignment won.
func (r *GormDeliveryRepository) AssignIfCreated(ctx context.Context, id kernel.UUID, riderID kernel.UUID) (bool, error) {
	if err := errors.Join(id.Validate(), riderID.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(delivery.StatusCreated)).
		Updates(map[string]any{
			"status":            int(delivery.StatusAssigned),
			"assigned_rider_id": riderID.Bytes(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// GetUnbilledWithFee retrieves deliveries for a business created inside the
// given period that carry a positive fee and have no charge recorded yet.
func (r *GormDeliveryRepository) GetUnbilledWithFee(ctx context.Context, businessID kernel.UUID, from, to time.Time) ([]*delivery.Delivery, error) {
	if err := businessID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID.Bytes()).
		Where("delivery_fee > 0").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Where("status NOT IN ?", []int{int(delivery.StatusFailed), int(delivery.StatusRejected)}).
		Where("NOT EXISTS (SELECT 1 FROM charges c WHERE c.delivery_id = deliveries.id)").
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}
