package chargerepo

import (
	"context"
	"errors"
	"time"

	"courierhub/internal/core/domain/model/billing"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormChargeRepository implements ChargeRepository using GORM.
type GormChargeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormChargeRepository creates a new GORM charge repository.
func NewGormChargeRepository(db *gorm.DB, tracker aggregateTracker) *GormChargeRepository {
	return &GormChargeRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddIfAbsent inserts the charge unless its delivery already has one.
// The unique index on delivery_id resolves the race; a conflicting insert
// becomes a no-op and AddIfAbsent reports (false, nil).
func (r *GormChargeRepository) AddIfAbsent(ctx context.Context, charge *billing.Charge) (bool, error) {
	if err := charge.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(charge)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "delivery_id"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(charge.ID(), charge)
	return true, nil
}

// Update saves a repriced charge to the database.
func (r *GormChargeRepository) Update(ctx context.Context, charge *billing.Charge) error {
	if err := charge.Validate(); err != nil {
		return err
	}

	dto := fromDomain(charge)
	result := r.db.WithContext(ctx).Model(&ChargeDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(charge.ID(), charge)
	return nil
}

// GetByDelivery retrieves the charge recorded for a delivery.
func (r *GormChargeRepository) GetByDelivery(ctx context.Context, deliveryID kernel.UUID) (*billing.Charge, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dto ChargeDTO
	if err := r.db.WithContext(ctx).First(&dto, "delivery_id = ?", deliveryID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("charge", deliveryID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// DeleteByDelivery removes the charge for a delivery. Deleting when no
// charge exists is a no-op.
func (r *GormChargeRepository) DeleteByDelivery(ctx context.Context, deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Where("delivery_id = ?", deliveryID.Bytes()).Delete(&ChargeDTO{}).Error
}

// IsBilled reports whether the delivery's charge already landed on an
// invoice.
func (r *GormChargeRepository) IsBilled(ctx context.Context, deliveryID kernel.UUID) (bool, error) {
	if err := deliveryID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Table("invoice_items").
		Where("delivery_id = ?", deliveryID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetUnbilledForPeriod retrieves the business's charges created within the
// period that no invoice item references yet. Charges already billed by an
// earlier invoice are excluded, so overlapping periods cannot double-bill.
func (r *GormChargeRepository) GetUnbilledForPeriod(ctx context.Context, businessID kernel.UUID, from, to time.Time) ([]*billing.Charge, error) {
	if err := businessID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ChargeDTO
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID.Bytes()).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Where("NOT EXISTS (SELECT 1 FROM invoice_items ii WHERE ii.delivery_id = charges.delivery_id)").
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	charges := make([]*billing.Charge, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}

	return charges, nil
}
