// Package riderrepo implements read access to the rider directory.
package riderrepo

import (
	"context"
	"errors"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/rider"
	"courierhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RiderDTO represents the database structure for persisting riders.
type RiderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"not null"`
	Phone  string    `gorm:"not null"`
	Active bool      `gorm:"not null"`
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

// GormRiderRepository implements RiderRepository using GORM.
type GormRiderRepository struct {
	db *gorm.DB
}

// NewGormRiderRepository creates a new GORM rider repository.
func NewGormRiderRepository(db *gorm.DB) *GormRiderRepository {
	return &GormRiderRepository{db: db}
}

// Get retrieves a rider by ID.
func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", id.String())
		}
		return nil, err
	}

	riderID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(riderID, dto.Name, dto.Phone, dto.Active)
}
