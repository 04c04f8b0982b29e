package queries

import (
	"context"
	"errors"
	"time"

	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNoDeliveryFound means the requested delivery does not exist.
var ErrNoDeliveryFound = errors.New("delivery not found")

// GetDeliveryTimelineQueryHandler reads a delivery's audit trail straight
// from the event table.
type GetDeliveryTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryTimelineQueryHandler creates a handler for timeline queries.
func NewGetDeliveryTimelineQueryHandler(db *gorm.DB) GetDeliveryTimelineQueryHandler {
	return GetDeliveryTimelineQueryHandler{db: db}
}

// Handle executes the timeline query. Returns ErrNoDeliveryFound when the
// delivery itself does not exist; a delivery always has at least its
// creation event.
func (h GetDeliveryTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryTimelineQuery,
) ([]GetDeliveryTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists int64
	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(1) FROM deliveries WHERE id = ?`, query.DeliveryID().Bytes()).
		Scan(&exists).Error
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNoDeliveryFound
	}

	events := make([]GetDeliveryTimelineQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			note,
			actor_id,
			created_at
		FROM delivery_events
		WHERE delivery_id = ?
		ORDER BY created_at, id
	`, query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var eventResp GetDeliveryTimelineQueryResponse
		var id, actorID uuid.UUID
		var status int
		var note string
		var createdAt time.Time

		if err = rows.Scan(&id, &status, &note, &actorID, &createdAt); err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		actorUUID, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}

		eventResp.ID = eventID
		eventResp.Status = delivery.Status(status)
		eventResp.Note = note
		eventResp.ActorID = actorUUID
		eventResp.CreatedAt = createdAt
		events = append(events, eventResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
