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

// CreateDeliveryCommandHandler handles delivery registration.
// Persists the delivery, its creation audit event, and for fee-bearing
// deliveries the initial charge in one transaction. Rider-created deliveries
// trigger a best-effort SMS to the business ops contact after commit.
type CreateDeliveryCommandHandler struct {
	uowFactory CreateDeliveryUoWFactory
	policy     services.AccessPolicy
	dispatcher ports.NotificationDispatcher
}

// NewCreateDeliveryCommandHandler creates a handler for delivery registration.
func NewCreateDeliveryCommandHandler(
	uowFactory CreateDeliveryUoWFactory,
	policy services.AccessPolicy,
	dispatcher ports.NotificationDispatcher,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		dispatcher: dispatcher,
	}
}

// Handle processes the delivery registration command.
func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(cmd.By(), services.ActionCreateDelivery); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	biz, err := uow.BusinessRepository().Get(ctx, cmd.BusinessID())
	if err != nil {
		return err
	}

	if cmd.By().IsRider() {
		if _, err = uow.RiderRepository().Get(ctx, cmd.By().ID()); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	newDelivery, err := delivery.NewDelivery(
		cmd.DeliveryID(),
		cmd.BusinessID(),
		cmd.Pickup(),
		cmd.Dropoff(),
		cmd.PackageDescription(),
		cmd.DeliveryFee(),
		cmd.By(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Add(ctx, newDelivery); err != nil {
		return err
	}

	event, err := delivery.NewEvent(
		kernel.NewUUID(), newDelivery.ID(), newDelivery.Status(),
		"delivery created", cmd.By().ID(), now,
	)
	if err != nil {
		return err
	}

	if err = uow.EventRepository().Append(ctx, event); err != nil {
		return err
	}

	if newDelivery.HasFee() {
		charge, chargeErr := billing.NewCharge(
			kernel.NewUUID(), newDelivery.ID(), newDelivery.BusinessID(),
			newDelivery.DeliveryFee(),
			fmt.Sprintf("Delivery fee - %s", newDelivery.Dropoff().Name()),
			now,
		)
		if chargeErr != nil {
			return chargeErr
		}

		if _, chargeErr = uow.ChargeRepository().AddIfAbsent(ctx, charge); chargeErr != nil {
			return chargeErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if cmd.By().IsRider() && biz.OpsPhone() != "" {
		h.dispatcher.Dispatch(biz.OpsPhone(), fmt.Sprintf(
			"Rider-created delivery %s awaits confirmation", newDelivery.ID()))
	}

	return nil
}
