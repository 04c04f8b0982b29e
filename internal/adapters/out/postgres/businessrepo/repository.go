// Package businessrepo implements read access to the business directory.
package businessrepo

import (
	"context"
	"errors"

	"courierhub/internal/core/domain/model/business"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessDTO represents the database structure for persisting businesses.
type BusinessDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"not null"`
	OpsPhone string
}

// TableName specifies the database table name for business entities.
func (BusinessDTO) TableName() string {
	return "businesses"
}

// GormBusinessRepository implements BusinessRepository using GORM.
type GormBusinessRepository struct {
	db *gorm.DB
}

// NewGormBusinessRepository creates a new GORM business repository.
func NewGormBusinessRepository(db *gorm.DB) *GormBusinessRepository {
	return &GormBusinessRepository{db: db}
}

// Get retrieves a business by ID.
func (r *GormBusinessRepository) Get(ctx context.Context, id kernel.UUID) (*business.Business, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BusinessDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("business", id.String())
		}
		return nil, err
	}

	businessID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return business.RestoreBusiness(businessID, dto.Name, dto.OpsPhone)
}
