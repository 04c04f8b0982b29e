package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
)

var (
	// ErrAssignmentConflict means the delivery left the assignable state
	// before this assignment landed, usually because a concurrent operator won.
	ErrAssignmentConflict = errors.New("delivery is no longer assignable")

	// ErrRiderNotActive means the chosen rider is deactivated.
	ErrRiderNotActive = errors.New("rider is not active")
)

// AssignRiderCommandHandler dispatches a delivery to a rider.
// The state check and the write happen as one atomic conditional update, so
// two operators assigning the same delivery produce exactly one winner; the
// loser gets ErrAssignmentConflict.
type AssignRiderCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     services.AccessPolicy
	dispatcher ports.NotificationDispatcher
}

// NewAssignRiderCommandHandler creates a handler for rider assignment.
func NewAssignRiderCommandHandler(
	uowFactory DeliveryUoWFactory,
	policy services.AccessPolicy,
	dispatcher ports.NotificationDispatcher,
) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		dispatcher: dispatcher,
	}
}

// Handle processes the assignment command.
func (h *AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(cmd.By(), services.ActionAssignRider); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignee, err := uow.RiderRepository().Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}
	if !assignee.IsActive() {
		return fmt.Errorf("%w: rider %s", ErrRiderNotActive, assignee.ID())
	}

	// Existence check first so a missing delivery reads as not-found rather
	// than as a lost race.
	if _, err = uow.DeliveryRepository().Get(ctx, cmd.DeliveryID()); err != nil {
		return err
	}

	assigned, err := uow.DeliveryRepository().AssignIfCreated(ctx, cmd.DeliveryID(), cmd.RiderID())
	if err != nil {
		return err
	}
	if !assigned {
		return fmt.Errorf("%w: delivery %s", ErrAssignmentConflict, cmd.DeliveryID())
	}

	now := time.Now().UTC()
	event, err := delivery.NewEvent(
		kernel.NewUUID(), cmd.DeliveryID(), delivery.StatusAssigned,
		fmt.Sprintf("assigned to rider %s", cmd.RiderID()), cmd.By().ID(), now,
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

	if assignee.Phone() != "" {
		h.dispatcher.Dispatch(assignee.Phone(), fmt.Sprintf(
			"New delivery %s assigned to you", cmd.DeliveryID()))
	}

	return nil
}
