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

// RejectDeliveryCommandHandler declines a rider-created delivery.
// Rejection is terminal and clears the self-assigned rider.
type RejectDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     services.AccessPolicy
	dispatcher ports.NotificationDispatcher
}

// NewRejectDeliveryCommandHandler creates a handler for delivery rejection.
func NewRejectDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	policy services.AccessPolicy,
	dispatcher ports.NotificationDispatcher,
) RejectDeliveryCommandHandler {
	return RejectDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		dispatcher: dispatcher,
	}
}

// Handle processes the rejection command.
func (h *RejectDeliveryCommandHandler) Handle(ctx context.Context, cmd RejectDeliveryCommand) error {
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

	// The rider reference is cleared by Reject, so resolve the phone first.
	riderPhone := ""
	if riderID := aggregate.AssignedRider(); riderID != nil {
		assignee, riderErr := uow.RiderRepository().Get(ctx, *riderID)
		if riderErr == nil {
			riderPhone = assignee.Phone()
		}
	}

	if err = aggregate.Reject(cmd.By()); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	note := "rejected by operator"
	if cmd.Reason() != "" {
		note = fmt.Sprintf("rejected by operator: %s", cmd.Reason())
	}

	now := time.Now().UTC()
	event, err := delivery.NewEvent(
		kernel.NewUUID(), aggregate.ID(), aggregate.Status(),
		note, cmd.By().ID(), now,
	)
	if err != nil {
		return err
	}

	if err = uow.EventRepository().Append(ctx, event); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if riderPhone != "" {
		h.dispatcher.Dispatch(riderPhone, fmt.Sprintf(
			"Delivery %s was rejected", aggregate.ID()))
	}

	return nil
}
