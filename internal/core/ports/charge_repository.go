package ports

import (
	"context"
	"errors"
	"time"

	"courierhub/internal/core/domain/model/billing"
	"courierhub/internal/core/domain/model/kernel"
)

// ErrInvoiceNumberTaken means the candidate invoice number lost to an
// existing invoice, either at the pre-insert check or on the storage unique
// constraint. Callers regenerate and retry a bounded number of times.
var ErrInvoiceNumberTaken = errors.New("invoice number already exists")

// ChargeRepository defines the persistence contract for the charge ledger.
// Storage enforces at most one charge per delivery with a uniqueness
// constraint on the delivery reference; the repository surfaces that
// constraint instead of racing check-then-insert logic.
type ChargeRepository interface {
	// AddIfAbsent inserts the charge unless one already exists for its
	// delivery. A uniqueness-constraint hit is reported as (false, nil):
	// already billed, no-op. Returns true when the row was inserted.
	AddIfAbsent(ctx context.Context, charge *billing.Charge) (bool, error)

	// Update persists a repriced charge.
	Update(ctx context.Context, charge *billing.Charge) error

	// GetByDelivery retrieves the charge for a delivery, if any.
	GetByDelivery(ctx context.Context, deliveryID kernel.UUID) (*billing.Charge, error)

	// DeleteByDelivery removes the charge for a delivery. Deleting a
	// delivery without a charge is a no-op.
	DeleteByDelivery(ctx context.Context, deliveryID kernel.UUID) error

	// IsBilled reports whether the delivery's charge is already referenced
	// by an invoice item. Billed charges are immutable.
	IsBilled(ctx context.Context, deliveryID kernel.UUID) (bool, error)

	// GetUnbilledForPeriod retrieves the business's charges created within
	// [from, to] that are not yet referenced by any invoice item. Charges
	// already billed by an earlier invoice are excluded so overlapping
	// periods cannot double-bill.
	GetUnbilledForPeriod(ctx context.Context, businessID kernel.UUID, from, to time.Time) ([]*billing.Charge, error)
}

// InvoiceRepository defines the persistence contract for invoices.
type InvoiceRepository interface {
	// Add persists an invoice together with all its items. Storage carries
	// unique constraints on the invoice number and on the item's delivery
	// reference; violations surface as duplicate-key errors.
	Add(ctx context.Context, invoice *billing.Invoice) error

	// NumberExists reports whether an invoice with the given number exists.
	NumberExists(ctx context.Context, number string) (bool, error)

	// Get retrieves an invoice with its items.
	Get(ctx context.Context, id kernel.UUID) (*billing.Invoice, error)
}
