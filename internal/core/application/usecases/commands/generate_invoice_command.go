package commands

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/billing"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrGenerateInvoiceCommandIsNotConstructed = errors.New(
	"GenerateInvoiceCommand must be created via NewGenerateInvoiceCommand constructor",
)

// GenerateInvoiceCommand represents a request to invoice a business for a
// billing period.
type GenerateInvoiceCommand struct { //nolint:recvcheck //using for validation
	invoiceID   kernel.UUID
	businessID  kernel.UUID
	periodStart time.Time
	periodEnd   time.Time
	invoiceType billing.InvoiceType
	dueDate     *time.Time
	notes       string
	by          actor.Actor

	guard guard.ConstructorGuard
}

// NewGenerateInvoiceCommand creates a command to generate an invoice.
// The period is half-open [periodStart, periodEnd); dueDate and notes are
// optional.
func NewGenerateInvoiceCommand(
	invoiceID, businessID kernel.UUID,
	periodStart, periodEnd time.Time,
	invoiceType billing.InvoiceType,
	dueDate *time.Time,
	notes string,
	by actor.Actor,
) (GenerateInvoiceCommand, error) {
	cmd := GenerateInvoiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setInvoiceID(invoiceID),
		cmd.setBusinessID(businessID),
		cmd.setPeriod(periodStart, periodEnd),
		cmd.setInvoiceType(invoiceType),
		cmd.setBy(by),
	); err != nil {
		return GenerateInvoiceCommand{}, err
	}
	cmd.dueDate = dueDate
	cmd.notes = notes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrGenerateInvoiceCommandIsNotConstructed)
}

// InvoiceID returns the identifier for the new invoice.
func (c GenerateInvoiceCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

// BusinessID returns the business being invoiced.
func (c GenerateInvoiceCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// PeriodStart returns the inclusive start of the billing period.
func (c GenerateInvoiceCommand) PeriodStart() time.Time {
	return c.periodStart
}

// PeriodEnd returns the exclusive end of the billing period.
func (c GenerateInvoiceCommand) PeriodEnd() time.Time {
	return c.periodEnd
}

// InvoiceType returns standard or proforma.
func (c GenerateInvoiceCommand) InvoiceType() billing.InvoiceType {
	return c.invoiceType
}

// DueDate returns the optional payment due date.
func (c GenerateInvoiceCommand) DueDate() *time.Time {
	return c.dueDate
}

// Notes returns the optional free-form notes.
func (c GenerateInvoiceCommand) Notes() string {
	return c.notes
}

// By returns the acting operator.
func (c GenerateInvoiceCommand) By() actor.Actor {
	return c.by
}

func (c *GenerateInvoiceCommand) setInvoiceID(invoiceID kernel.UUID) error {
	if err := invoiceID.Validate(); err != nil {
		return err
	}

	c.invoiceID = invoiceID
	return nil
}

func (c *GenerateInvoiceCommand) setBusinessID(businessID kernel.UUID) error {
	if err := businessID.Validate(); err != nil {
		return err
	}

	c.businessID = businessID
	return nil
}

func (c *GenerateInvoiceCommand) setPeriod(periodStart, periodEnd time.Time) error {
	if periodStart.IsZero() || periodEnd.IsZero() {
		return errs.NewValueIsRequiredError("period")
	}
	if !periodEnd.After(periodStart) {
		return errs.NewValueIsInvalidError("period")
	}

	c.periodStart = periodStart
	c.periodEnd = periodEnd
	return nil
}

func (c *GenerateInvoiceCommand) setInvoiceType(invoiceType billing.InvoiceType) error {
	if err := invoiceType.Validate(); err != nil {
		return err
	}

	c.invoiceType = invoiceType
	return nil
}

func (c *GenerateInvoiceCommand) setBy(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}

	c.by = by
	return nil
}
