package queries

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrGetStalePendingConfirmationsQueryIsNotConstructed = errors.New(
	"GetStalePendingConfirmationsQuery must be created via NewGetStalePendingConfirmationsQuery constructor",
)

// GetStalePendingConfirmationsQuery retrieves rider-created deliveries stuck
// awaiting confirmation for longer than a threshold. Feeds the reminder job.
type GetStalePendingConfirmationsQuery struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewGetStalePendingConfirmationsQuery creates a query for stale pending
// deliveries. The threshold must be positive.
func NewGetStalePendingConfirmationsQuery(olderThan time.Duration) (GetStalePendingConfirmationsQuery, error) {
	if olderThan <= 0 {
		return GetStalePendingConfirmationsQuery{}, errs.NewValueIsInvalidError("olderThan")
	}

	return GetStalePendingConfirmationsQuery{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStalePendingConfirmationsQuery) Validate() error {
	return q.guard.Validate(ErrGetStalePendingConfirmationsQueryIsNotConstructed)
}

// OlderThan returns the staleness threshold.
func (q GetStalePendingConfirmationsQuery) OlderThan() time.Duration {
	return q.olderThan
}

// GetStalePendingConfirmationsQueryResponse represents one stale pending
// delivery with the ops contact to remind.
type GetStalePendingConfirmationsQueryResponse struct {
	DeliveryID kernel.UUID
	BusinessID kernel.UUID
	OpsPhone   string
	CreatedAt  time.Time
}
