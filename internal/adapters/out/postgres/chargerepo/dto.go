// Package chargerepo implements persistence for the charge ledger. The
// unique index on delivery_id is the storage-level guarantee that a delivery
// is billed at most once.
package chargerepo

import (
	"time"

	"courierhub/internal/core/domain/model/billing"
	"courierhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChargeDTO represents the database structure for persisting charges.
type ChargeDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DeliveryID  uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	BusinessID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description string          `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"index;not null"`
}

// TableName specifies the database table name for charge entities.
func (ChargeDTO) TableName() string {
	return "charges"
}

func fromDomain(c *billing.Charge) ChargeDTO {
	return ChargeDTO{
		ID:          c.ID().Bytes(),
		DeliveryID:  c.DeliveryID().Bytes(),
		BusinessID:  c.BusinessID().Bytes(),
		Amount:      c.Amount(),
		Description: c.Description(),
		CreatedAt:   c.CreatedAt(),
	}
}

func toDomain(dto ChargeDTO) (*billing.Charge, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	return billing.RestoreCharge(id, deliveryID, businessID, dto.Amount, dto.Description, dto.CreatedAt)
}
