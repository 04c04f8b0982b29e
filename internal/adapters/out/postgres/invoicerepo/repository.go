package invoicerepo

import (
	"context"
	"errors"
	"fmt"

	"courierhub/internal/core/domain/model/billing"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInvoiceRepository creates a new GORM invoice repository.
func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves an invoice and all its items in one create. A number collision
// surfaces as ports.ErrInvoiceNumberTaken.
func (r *GormInvoiceRepository) Add(ctx context.Context, invoice *billing.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return err
	}

	dto := fromDomain(invoice)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		// The generator selects only unbilled charges inside the same
		// transaction, so a duplicate key here is the number constraint.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ports.ErrInvoiceNumberTaken, invoice.Number())
		}
		return err
	}

	r.tracker.TrackAggregate(invoice.ID(), invoice)
	return nil
}

// NumberExists reports whether an invoice with the given number exists.
func (r *GormInvoiceRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&InvoiceDTO{}).Where("number = ?", number).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Get retrieves an invoice with its items by ID.
func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*billing.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
