package queries

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStalePendingConfirmationsQueryHandler finds deliveries stuck in
// PendingConfirmation, joined with their business ops contact.
type GetStalePendingConfirmationsQueryHandler struct {
	db *gorm.DB
}

// NewGetStalePendingConfirmationsQueryHandler creates a handler for stale
// pending delivery queries.
func NewGetStalePendingConfirmationsQueryHandler(db *gorm.DB) GetStalePendingConfirmationsQueryHandler {
	return GetStalePendingConfirmationsQueryHandler{db: db}
}

// Handle executes the staleness query against the current clock.
func (h GetStalePendingConfirmationsQueryHandler) Handle(
	ctx context.Context,
	query GetStalePendingConfirmationsQuery,
) ([]GetStalePendingConfirmationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-query.OlderThan())
	stale := make([]GetStalePendingConfirmationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.business_id,
			COALESCE(b.ops_phone, ''),
			d.created_at
		FROM deliveries d
		LEFT JOIN businesses b ON b.id = d.business_id
		WHERE d.status = ?
		  AND d.created_at < ?
		ORDER BY d.created_at
	`, int(delivery.StatusPendingConfirmation), cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var staleResp GetStalePendingConfirmationsQueryResponse
		var id, businessID uuid.UUID
		var opsPhone string
		var createdAt time.Time

		if err = rows.Scan(&id, &businessID, &opsPhone, &createdAt); err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		bizID, idErr := kernel.UUIDFromBytes(businessID[:])
		if idErr != nil {
			return nil, idErr
		}

		staleResp.DeliveryID = deliveryID
		staleResp.BusinessID = bizID
		staleResp.OpsPhone = opsPhone
		staleResp.CreatedAt = createdAt
		stale = append(stale, staleResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stale, nil
}
