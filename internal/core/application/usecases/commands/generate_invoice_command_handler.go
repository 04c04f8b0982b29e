package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courierhub/internal/core/domain/model/billing"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
)

// maxNumberAttempts bounds the invoice number generate-check-retry loop.
const maxNumberAttempts = 10

var (
	// ErrNoBillableItems means the period holds nothing to invoice.
	ErrNoBillableItems = errors.New("no billable items in period")

	// ErrInvoiceNumberExhausted means no free invoice number was found
	// within the attempt budget.
	ErrInvoiceNumberExhausted = errors.New("could not generate a unique invoice number")
)

// GenerateInvoiceCommandHandler produces an invoice for a billing period.
// One transaction covers the whole run: charge backfill for unbilled
// fee-bearing deliveries, selection of charges not yet on any invoice, and
// the invoice insert with all its items. A number collision rolls the
// attempt back and retries with a fresh number, bounded by
// maxNumberAttempts.
type GenerateInvoiceCommandHandler struct {
	uowFactory BillingUoWFactory
	policy     services.AccessPolicy
}

// NewGenerateInvoiceCommandHandler creates a handler for invoice generation.
func NewGenerateInvoiceCommandHandler(uowFactory BillingUoWFactory, policy services.AccessPolicy) GenerateInvoiceCommandHandler {
	return GenerateInvoiceCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the invoice generation command.
func (h *GenerateInvoiceCommandHandler) Handle(ctx context.Context, cmd GenerateInvoiceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(cmd.By(), services.ActionGenerateInvoice); err != nil {
		return err
	}

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		err := h.generate(ctx, cmd)
		if errors.Is(err, ports.ErrInvoiceNumberTaken) {
			continue
		}
		return err
	}

	return ErrInvoiceNumberExhausted
}

// generate runs one full attempt in its own transaction. A number collision
// aborts the transaction, so the retry starts clean.
func (h *GenerateInvoiceCommandHandler) generate(ctx context.Context, cmd GenerateInvoiceCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.BusinessRepository().Get(ctx, cmd.BusinessID()); err != nil {
		return err
	}

	if err := h.backfillCharges(ctx, uow, cmd); err != nil {
		return err
	}

	charges, err := uow.ChargeRepository().GetUnbilledForPeriod(ctx, cmd.BusinessID(), cmd.PeriodStart(), cmd.PeriodEnd())
	if err != nil {
		return err
	}
	if len(charges) == 0 {
		return ErrNoBillableItems
	}

	now := time.Now().UTC()
	number := billing.NewInvoiceNumber(cmd.InvoiceType(), now)

	taken, err := uow.InvoiceRepository().NumberExists(ctx, number)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s", ports.ErrInvoiceNumberTaken, number)
	}

	invoice, err := billing.NewInvoice(
		cmd.InvoiceID(), cmd.BusinessID(),
		number,
		cmd.PeriodStart(), cmd.PeriodEnd(),
		cmd.InvoiceType(),
		cmd.DueDate(),
		cmd.Notes(),
		cmd.By().ID(),
		now,
		charges,
	)
	if err != nil {
		return err
	}

	if err = uow.InvoiceRepository().Add(ctx, invoice); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// backfillCharges records a charge for every fee-bearing delivery of the
// period that has none yet. The charge inherits the delivery's creation time
// so it lands inside the period being billed.
func (h *GenerateInvoiceCommandHandler) backfillCharges(ctx context.Context, uow BillingUoW, cmd GenerateInvoiceCommand) error {
	unbilled, err := uow.DeliveryRepository().GetUnbilledWithFee(ctx, cmd.BusinessID(), cmd.PeriodStart(), cmd.PeriodEnd())
	if err != nil {
		return err
	}

	for _, d := range unbilled {
		charge, chargeErr := billing.NewCharge(
			kernel.NewUUID(), d.ID(), d.BusinessID(),
			d.DeliveryFee(),
			fmt.Sprintf("Delivery fee - %s", d.Dropoff().Name()),
			d.CreatedAt(),
		)
		if chargeErr != nil {
			return chargeErr
		}

		if _, chargeErr = uow.ChargeRepository().AddIfAbsent(ctx, charge); chargeErr != nil {
			return chargeErr
		}
	}

	return nil
}
