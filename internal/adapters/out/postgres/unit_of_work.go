// Package postgres provides the GORM-based Unit of Work implementation.
// A unit of work wraps one database transaction and hands out repositories
// bound to it, so a business operation's writes (delivery plus its audit
// event, invoice plus its items) commit together or not at all.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.DeliveryRepository().Update(ctx, delivery); err != nil {
//	    return err
//	}
//	if err := uow.EventRepository().Append(ctx, event); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each business operation gets its own instance; instances are not safe for
// concurrent use.
package postgres

import (
	"context"

	"courierhub/internal/adapters/out/postgres/businessrepo"
	"courierhub/internal/adapters/out/postgres/chargerepo"
	"courierhub/internal/adapters/out/postgres/deliveryrepo"
	"courierhub/internal/adapters/out/postgres/invoicerepo"
	"courierhub/internal/adapters/out/postgres/riderrepo"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// This is useful for implementing patterns like event sourcing or outbox pattern.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// database connection. Each Create call returns a fresh instance so
// concurrent operations stay isolated.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written during it. Repositories obtained from it run inside the
// active transaction, or directly on the connection when none is open.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction.
// Calling Begin again while a transaction is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the active transaction, or the main connection when no
// transaction is open.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// DeliveryRepository returns a delivery repository bound to the current transaction.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn(), uow)
}

// EventRepository returns an audit event repository bound to the current transaction.
func (uow *GormUnitOfWork) EventRepository() ports.EventRepository {
	return deliveryrepo.NewGormEventRepository(uow.conn())
}

// ChargeRepository returns a charge repository bound to the current transaction.
func (uow *GormUnitOfWork) ChargeRepository() ports.ChargeRepository {
	return chargerepo.NewGormChargeRepository(uow.conn(), uow)
}

// InvoiceRepository returns an invoice repository bound to the current transaction.
func (uow *GormUnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	return invoicerepo.NewGormInvoiceRepository(uow.conn(), uow)
}

// RiderRepository returns a rider directory repository bound to the current transaction.
func (uow *GormUnitOfWork) RiderRepository() ports.RiderRepository {
	return riderrepo.NewGormRiderRepository(uow.conn())
}

// BusinessRepository returns a business directory repository bound to the current transaction.
func (uow *GormUnitOfWork) BusinessRepository() ports.BusinessRepository {
	return businessrepo.NewGormBusinessRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Repository implementations call it on Add and Update; the tracked
// set enables post-commit processing such as notification dispatch.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
