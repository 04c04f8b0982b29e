package commands

import (
	"context"
	"errors"
	"fmt"

	"courierhub/internal/core/domain/model/billing"
	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrDeliveryAlreadyBilled means the delivery's charge is on an invoice and
// can no longer be corrected.
var ErrDeliveryAlreadyBilled = errors.New("delivery is already billed")

// SetDeliveryFeeCommandHandler corrects a delivery fee and keeps the charge
// ledger in sync: a positive fee upserts the charge amount, a zero fee
// deletes it. Charges already on an invoice are immutable.
type SetDeliveryFeeCommandHandler struct {
	uowFactory FeeUoWFactory
	policy     services.AccessPolicy
}

// NewSetDeliveryFeeCommandHandler creates a handler for fee corrections.
func NewSetDeliveryFeeCommandHandler(uowFactory FeeUoWFactory, policy services.AccessPolicy) SetDeliveryFeeCommandHandler {
	return SetDeliveryFeeCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the fee correction command.
func (h *SetDeliveryFeeCommandHandler) Handle(ctx context.Context, cmd SetDeliveryFeeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(cmd.By(), services.ActionSetDeliveryFee); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	billed, err := uow.ChargeRepository().IsBilled(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if billed {
		return fmt.Errorf("%w: delivery %s", ErrDeliveryAlreadyBilled, cmd.DeliveryID())
	}

	if err = aggregate.SetFee(cmd.Fee(), cmd.By()); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = h.syncCharge(ctx, uow, aggregate, cmd.Fee()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// syncCharge mirrors the corrected fee into the charge ledger.
func (h *SetDeliveryFeeCommandHandler) syncCharge(ctx context.Context, uow FeeUoW, aggregate *delivery.Delivery, fee decimal.Decimal) error {
	if fee.IsZero() {
		return uow.ChargeRepository().DeleteByDelivery(ctx, aggregate.ID())
	}

	charge, err := uow.ChargeRepository().GetByDelivery(ctx, aggregate.ID())
	switch {
	case err == nil:
		if err = charge.Reprice(fee); err != nil {
			return err
		}
		return uow.ChargeRepository().Update(ctx, charge)
	case errors.Is(err, errs.ErrObjectNotFound):
		charge, err = billing.NewCharge(
			kernel.NewUUID(), aggregate.ID(), aggregate.BusinessID(),
			fee,
			fmt.Sprintf("Delivery fee - %s", aggregate.Dropoff().Name()),
			aggregate.CreatedAt(),
		)
		if err != nil {
			return err
		}

		_, err = uow.ChargeRepository().AddIfAbsent(ctx, charge)
		return err
	default:
		return err
	}
}
