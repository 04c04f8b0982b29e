package billing

import (
	"errors"
	"fmt"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvoiceIsNotConstructed is returned when an Invoice instance was not
	// created through the NewInvoice or RestoreInvoice factory methods.
	ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

	// ErrInvoiceHasNoCharges is returned when building an invoice from an
	// empty charge set.
	ErrInvoiceHasNoCharges = errors.New("invoice requires at least one charge")

	// ErrInvoiceTotalMismatch is returned when an invoice's total does not
	// equal the exact sum of its item amounts.
	ErrInvoiceTotalMismatch = errors.New("invoice total does not equal the sum of its items")
)

// InvoiceType distinguishes final invoices from preliminary proforma ones.
type InvoiceType int

const (
	InvoiceTypeUnknown InvoiceType = iota

	// InvoiceTypeStandard is a final invoice.
	InvoiceTypeStandard

	// InvoiceTypeProforma is a preliminary, non-final invoice.
	InvoiceTypeProforma
)

func getInvoiceTypeStrings() map[InvoiceType]string {
	return map[InvoiceType]string{
		InvoiceTypeUnknown:  "UNKNOWN",
		InvoiceTypeStandard: "INVOICE",
		InvoiceTypeProforma: "PROFORMA",
	}
}

// InvoiceTypeFromString parses an invoice type from its wire name.
func InvoiceTypeFromString(s string) (InvoiceType, error) {
	for t, str := range getInvoiceTypeStrings() {
		if t != InvoiceTypeUnknown && str == s {
			return t, nil
		}
	}
	return InvoiceTypeUnknown, errs.NewValueIsInvalidErrorWithCause("invoiceType",
		fmt.Errorf("%q is not a valid invoice type", s))
}

// String returns the wire name of the invoice type.
func (t InvoiceType) String() string {
	if str, ok := getInvoiceTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the InvoiceType is one of the defined values.
func (t InvoiceType) Validate() error {
	if t != InvoiceTypeStandard && t != InvoiceTypeProforma {
		return errs.NewValueIsInvalidErrorWithCause("invoiceType",
			fmt.Errorf("%d is not a valid invoice type", t))
	}
	return nil
}

// InvoiceStatus is the billing lifecycle of an issued invoice.
// Only the initial status (Draft or Proforma) is set by this core; later
// moves (Sent, Paid, Cancelled) are administrative.
type InvoiceStatus int

const (
	InvoiceStatusUnknown InvoiceStatus = iota
	InvoiceStatusDraft
	InvoiceStatusProforma
	InvoiceStatusSent
	InvoiceStatusPaid
	InvoiceStatusCancelled
)

func getInvoiceStatusStrings() map[InvoiceStatus]string {
	return map[InvoiceStatus]string{
		InvoiceStatusUnknown:   "UNKNOWN",
		InvoiceStatusDraft:     "DRAFT",
		InvoiceStatusProforma:  "PROFORMA",
		InvoiceStatusSent:      "SENT",
		InvoiceStatusPaid:      "PAID",
		InvoiceStatusCancelled: "CANCELLED",
	}
}

// String returns the wire name of the invoice status.
func (s InvoiceStatus) String() string {
	if str, ok := getInvoiceStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the InvoiceStatus is one of the defined values.
func (s InvoiceStatus) Validate() error {
	if s <= InvoiceStatusUnknown || s > InvoiceStatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("invoiceStatus",
			fmt.Errorf("%d is not a valid invoice status", s))
	}
	return nil
}

// InvoiceItem is one line of an invoice, mirroring the charge it bills.
// DeliveryID is nil only for items that do not bill a specific delivery.
type InvoiceItem struct {
	id          kernel.UUID
	deliveryID  *kernel.UUID
	amount      decimal.Decimal
	description string
}

// NewInvoiceItem creates a validated invoice line.
func NewInvoiceItem(id kernel.UUID, deliveryID *kernel.UUID, amount decimal.Decimal, description string) (InvoiceItem, error) {
	if err := id.Validate(); err != nil {
		return InvoiceItem{}, err
	}
	if deliveryID != nil {
		if err := deliveryID.Validate(); err != nil {
			return InvoiceItem{}, err
		}
	}
	if !amount.IsPositive() {
		return InvoiceItem{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", amount))
	}

	return InvoiceItem{id: id, deliveryID: deliveryID, amount: amount, description: description}, nil
}

// ID returns the item's unique identifier.
func (i InvoiceItem) ID() kernel.UUID { return i.id }

// DeliveryID returns the billed delivery, or nil.
func (i InvoiceItem) DeliveryID() *kernel.UUID { return i.deliveryID }

// Amount returns the line amount.
func (i InvoiceItem) Amount() decimal.Decimal { return i.amount }

// Description returns the line description.
func (i InvoiceItem) Description() string { return i.description }

// Invoice is a uniquely numbered aggregation of charges over a billing period
// for one business.
//
// Invariant: the total amount equals the exact decimal sum of the item
// amounts; NewInvoice derives the total from the charge set and Validate
// re-checks it on every restore.
type Invoice struct {
	id          kernel.UUID
	businessID  kernel.UUID
	number      string
	periodStart time.Time
	periodEnd   time.Time
	totalAmount decimal.Decimal
	status      InvoiceStatus
	invoiceType InvoiceType
	dueDate     *time.Time
	notes       string
	createdBy   kernel.UUID
	generatedAt time.Time
	items       []InvoiceItem

	isConstructed bool
}

// NewInvoice builds an invoice from a non-empty charge set. One item is
// created per charge, mirroring its delivery, amount, and description; the
// total is the exact sum of the item amounts. Proforma invoices start in
// Proforma status, standard ones in Draft.
func NewInvoice(
	id, businessID kernel.UUID,
	number string,
	periodStart, periodEnd time.Time,
	invoiceType InvoiceType,
	dueDate *time.Time,
	notes string,
	createdBy kernel.UUID,
	generatedAt time.Time,
	charges []*Charge,
) (*Invoice, error) {
	if err := errors.Join(
		id.Validate(),
		businessID.Validate(),
		invoiceType.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	if periodStart.IsZero() || periodEnd.IsZero() {
		return nil, errs.NewValueIsRequiredError("period")
	}
	if periodEnd.Before(periodStart) {
		return nil, errs.NewValueIsInvalidErrorWithCause("period",
			fmt.Errorf("period end %s precedes period start %s", periodEnd, periodStart))
	}
	if len(charges) == 0 {
		return nil, ErrInvoiceHasNoCharges
	}

	items := make([]InvoiceItem, 0, len(charges))
	total := decimal.Zero
	for _, charge := range charges {
		if err := charge.Validate(); err != nil {
			return nil, err
		}
		deliveryID := charge.DeliveryID()
		item, err := NewInvoiceItem(kernel.NewUUID(), &deliveryID, charge.Amount(), charge.Description())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		total = total.Add(charge.Amount())
	}

	status := InvoiceStatusDraft
	if invoiceType == InvoiceTypeProforma {
		status = InvoiceStatusProforma
	}

	return &Invoice{
		id:            id,
		businessID:    businessID,
		number:        number,
		periodStart:   periodStart,
		periodEnd:     periodEnd,
		totalAmount:   total,
		status:        status,
		invoiceType:   invoiceType,
		dueDate:       dueDate,
		notes:         notes,
		createdBy:     createdBy,
		generatedAt:   generatedAt,
		items:         items,
		isConstructed: true,
	}, nil
}

// RestoreInvoice reconstructs an invoice with its items from persistence and
// re-checks the total invariant.
func RestoreInvoice(
	id, businessID kernel.UUID,
	number string,
	periodStart, periodEnd time.Time,
	totalAmount decimal.Decimal,
	status InvoiceStatus,
	invoiceType InvoiceType,
	dueDate *time.Time,
	notes string,
	createdBy kernel.UUID,
	generatedAt time.Time,
	items []InvoiceItem,
) (*Invoice, error) {
	if err := errors.Join(
		id.Validate(),
		businessID.Validate(),
		status.Validate(),
		invoiceType.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}

	inv := &Invoice{
		id:            id,
		businessID:    businessID,
		number:        number,
		periodStart:   periodStart,
		periodEnd:     periodEnd,
		totalAmount:   totalAmount,
		status:        status,
		invoiceType:   invoiceType,
		dueDate:       dueDate,
		notes:         notes,
		createdBy:     createdBy,
		generatedAt:   generatedAt,
		items:         items,
		isConstructed: true,
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

// Validate ensures the Invoice was properly constructed and that the total
// equals the exact sum of its items.
func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}

	sum := decimal.Zero
	for _, item := range i.items {
		sum = sum.Add(item.Amount())
	}
	if !sum.Equal(i.totalAmount) {
		return fmt.Errorf("%w: total %s, items sum %s", ErrInvoiceTotalMismatch, i.totalAmount, sum)
	}
	return nil
}

// ID returns the invoice's unique identifier.
func (i *Invoice) ID() kernel.UUID { return i.id }

// BusinessID returns the billed business.
func (i *Invoice) BusinessID() kernel.UUID { return i.businessID }

// Number returns the globally unique invoice number.
func (i *Invoice) Number() string { return i.number }

// PeriodStart returns the inclusive start of the billing period.
func (i *Invoice) PeriodStart() time.Time { return i.periodStart }

// PeriodEnd returns the inclusive end of the billing period.
func (i *Invoice) PeriodEnd() time.Time { return i.periodEnd }

// TotalAmount returns the exact sum of the item amounts.
func (i *Invoice) TotalAmount() decimal.Decimal { return i.totalAmount }

// Status returns the billing lifecycle status.
func (i *Invoice) Status() InvoiceStatus { return i.status }

// Type returns whether the invoice is standard or proforma.
func (i *Invoice) Type() InvoiceType { return i.invoiceType }

// DueDate returns the payment due date, or nil.
func (i *Invoice) DueDate() *time.Time { return i.dueDate }

// Notes returns the free-text notes.
func (i *Invoice) Notes() string { return i.notes }

// CreatedBy returns the actor that requested generation.
func (i *Invoice) CreatedBy() kernel.UUID { return i.createdBy }

// GeneratedAt returns when the invoice was generated.
func (i *Invoice) GeneratedAt() time.Time { return i.generatedAt }

// Items returns the invoice lines.
func (i *Invoice) Items() []InvoiceItem { return i.items }
