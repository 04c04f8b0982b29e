// Package business provides the Business aggregate: the B2B customer that
// owns deliveries and receives invoices. The ops phone is the contact
// notified when riders create deliveries on the business's behalf.
package business

import (
	"errors"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
)

var (
	// ErrNameIsRequired is returned when attempting to create a business without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrBusinessIsNotConstructed is returned when using an improperly initialized Business.
	ErrBusinessIsNotConstructed = errors.New("Business must be created via NewBusiness constructor")
)

// Business represents a B2B customer of the courier platform.
type Business struct {
	id       kernel.UUID
	name     string
	opsPhone string

	isConstructed bool
}

// NewBusiness creates a validated Business. The ops phone is optional; when
// empty, rider-creation notifications for this business are skipped.
func NewBusiness(id kernel.UUID, name, opsPhone string) (*Business, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}

	return &Business{id: id, name: name, opsPhone: opsPhone, isConstructed: true}, nil
}

// RestoreBusiness reconstructs a Business from persistence.
func RestoreBusiness(id kernel.UUID, name, opsPhone string) (*Business, error) {
	return NewBusiness(id, name, opsPhone)
}

// Validate ensures the Business was created via NewBusiness.
func (b *Business) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBusinessIsNotConstructed
	}
	return nil
}

// ID returns the business's unique identifier.
func (b *Business) ID() kernel.UUID { return b.id }

// Name returns the business's display name.
func (b *Business) Name() string { return b.name }

// OpsPhone returns the operations contact phone, possibly empty.
func (b *Business) OpsPhone() string { return b.opsPhone }
