package commands

import (
	"context"
	"fmt"
	"time"

	"courierhub/internal/core/domain/model/billing"
	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
)

// UpdateDeliveryStatusCommandHandler records rider progress on a delivery.
// Completing a fee-bearing delivery writes its charge in the same
// transaction; a failed delivery alerts the business ops contact.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory ProgressUoWFactory
	policy     services.AccessPolicy
	dispatcher ports.NotificationDispatcher
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for progress updates.
func NewUpdateDeliveryStatusCommandHandler(
	uowFactory ProgressUoWFactory,
	policy services.AccessPolicy,
	dispatcher ports.NotificationDispatcher,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		dispatcher: dispatcher,
	}
}

// Handle processes the progress command.
func (h *UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(cmd.By(), services.ActionUpdateProgress); err != nil {
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

	now := time.Now().UTC()
	if err = aggregate.TransitionTo(cmd.Target(), cmd.By(), now); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	event, err := delivery.NewEvent(
		kernel.NewUUID(), aggregate.ID(), aggregate.Status(),
		cmd.Note(), cmd.By().ID(), now,
	)
	if err != nil {
		return err
	}

	if err = uow.EventRepository().Append(ctx, event); err != nil {
		return err
	}

	if aggregate.Status() == delivery.StatusDelivered && aggregate.HasFee() {
		// The charge inherits the delivery's creation time, matching the
		// invoice backfill path, so period attribution does not depend on
		// when the rider completed the run.
		charge, chargeErr := billing.NewCharge(
			kernel.NewUUID(), aggregate.ID(), aggregate.BusinessID(),
			aggregate.DeliveryFee(),
			fmt.Sprintf("Delivery fee - %s", aggregate.Dropoff().Name()),
			aggregate.CreatedAt(),
		)
		if chargeErr != nil {
			return chargeErr
		}

		if _, chargeErr = uow.ChargeRepository().AddIfAbsent(ctx, charge); chargeErr != nil {
			return chargeErr
		}
	}

	opsPhone := ""
	if aggregate.Status() == delivery.StatusFailed {
		biz, bizErr := uow.BusinessRepository().Get(ctx, aggregate.BusinessID())
		if bizErr == nil {
			opsPhone = biz.OpsPhone()
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if opsPhone != "" {
		h.dispatcher.Dispatch(opsPhone, fmt.Sprintf(
			"Delivery %s failed and needs attention", aggregate.ID()))
	}

	return nil
}
