// Package invoicerepo implements persistence for invoices and their items.
// Two storage constraints back the billing invariants: the unique index on
// invoice numbers and the unique index on invoice_items.delivery_id, which
// blocks a delivery from appearing on two invoices.
package invoicerepo

import (
	"time"

	"courierhub/internal/core/domain/model/billing"
	"courierhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceDTO represents the database structure for persisting invoices.
type InvoiceDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BusinessID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Number      string          `gorm:"uniqueIndex;not null"`
	PeriodStart time.Time       `gorm:"not null"`
	PeriodEnd   time.Time       `gorm:"not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status      int             `gorm:"not null"`
	InvoiceType int             `gorm:"not null"`
	DueDate     *time.Time
	Notes       string
	CreatedBy   uuid.UUID        `gorm:"type:uuid;not null"`
	GeneratedAt time.Time        `gorm:"not null"`
	Items       []InvoiceItemDTO `gorm:"foreignKey:InvoiceID"`
}

// TableName specifies the database table name for invoice entities.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// InvoiceItemDTO represents one line of an invoice. DeliveryID is NULL for
// manual lines; for delivery-backed lines the unique index keeps each
// delivery on at most one invoice.
type InvoiceItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	DeliveryID  *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description string          `gorm:"not null"`
}

// TableName specifies the database table name for invoice items.
func (InvoiceItemDTO) TableName() string {
	return "invoice_items"
}

func fromDomain(inv *billing.Invoice) InvoiceDTO {
	items := make([]InvoiceItemDTO, 0, len(inv.Items()))
	for _, item := range inv.Items() {
		var deliveryID *uuid.UUID
		if id := item.DeliveryID(); id != nil {
			raw := id.Bytes()
			deliveryID = &raw
		}
		items = append(items, InvoiceItemDTO{
			ID:          item.ID().Bytes(),
			InvoiceID:   inv.ID().Bytes(),
			DeliveryID:  deliveryID,
			Amount:      item.Amount(),
			Description: item.Description(),
		})
	}

	return InvoiceDTO{
		ID:          inv.ID().Bytes(),
		BusinessID:  inv.BusinessID().Bytes(),
		Number:      inv.Number(),
		PeriodStart: inv.PeriodStart(),
		PeriodEnd:   inv.PeriodEnd(),
		TotalAmount: inv.TotalAmount(),
		Status:      int(inv.Status()),
		InvoiceType: int(inv.Type()),
		DueDate:     inv.DueDate(),
		Notes:       inv.Notes(),
		CreatedBy:   inv.CreatedBy().Bytes(),
		GeneratedAt: inv.GeneratedAt(),
		Items:       items,
	}
}

func toDomain(dto InvoiceDTO) (*billing.Invoice, error) {
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

	items := make([]billing.InvoiceItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		var deliveryID *kernel.UUID
		if itemDTO.DeliveryID != nil {
			dID, dErr := kernel.UUIDFromBytes((*itemDTO.DeliveryID)[:])
			if dErr != nil {
				return nil, dErr
			}
			deliveryID = &dID
		}

		item, itemErr := billing.NewInvoiceItem(itemID, deliveryID, itemDTO.Amount, itemDTO.Description)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return billing.RestoreInvoice(
		id, businessID,
		dto.Number,
		dto.PeriodStart, dto.PeriodEnd,
		dto.TotalAmount,
		billing.InvoiceStatus(dto.Status),
		billing.InvoiceType(dto.InvoiceType),
		dto.DueDate,
		dto.Notes,
		createdBy,
		dto.GeneratedAt,
		items,
	)
}
