package commands

import (
	"context"
	"fmt"
	"time"

	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
)

// ConfirmDeliveryCommandHandler approves a rider-created delivery.
// Confirmation moves the delivery from PendingConfirmation to Assigned with
// its self-assigned rider kept.
type ConfirmDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     services.AccessPolicy
	dispatcher ports.NotificationDispatcher
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	policy services.AccessPolicy,
	dispatcher ports.NotificationDispatcher,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		dispatcher: dispatcher,
	}
}

// Handle processes the confirmation command.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(cmd.By(), services.ActionResolvePending); err != nil {
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

	if err = aggregate.Confirm(cmd.By()); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	now := time.Now().UTC()
	event, err := delivery.NewEvent(
		kernel.NewUUID(), aggregate.ID(), aggregate.Status(),
		"confirmed by operator", cmd.By().ID(), now,
	)
	if err != nil {
		return err
	}

	if err = uow.EventRepository().Append(ctx, event); err != nil {
		return err
	}

	riderPhone := ""
	if riderID := aggregate.AssignedRider(); riderID != nil {
		assignee, riderErr := uow.RiderRepository().Get(ctx, *riderID)
		if riderErr == nil {
			riderPhone = assignee.Phone()
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if riderPhone != "" {
		h.dispatcher.Dispatch(riderPhone, fmt.Sprintf(
			"Delivery %s confirmed, you are good to go", aggregate.ID()))
	}

	return nil
}
