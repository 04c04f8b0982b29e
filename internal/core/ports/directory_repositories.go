package ports

import (
	"context"

	"courierhub/internal/core/domain/model/business"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/rider"
)

// RiderRepository defines the read contract for the rider directory.
// Rider onboarding is administered outside this core; commands only need
// existence and activity lookups.
type RiderRepository interface {
	// Get retrieves a rider by ID.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)
}

// BusinessRepository defines the read contract for the business directory.
type BusinessRepository interface {
	// Get retrieves a business by ID.
	Get(ctx context.Context, id kernel.UUID) (*business.Business, error)
}
