package commands_test

import (
	"context"
	"testing"
	"time"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/billing"
	"courierhub/internal/core/domain/model/business"
	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/rider"
	"courierhub/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) AssignIfCreated(ctx context.Context, id, riderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, id, riderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryRepository) GetUnbilledWithFee(ctx context.Context, businessID kernel.UUID, from, to time.Time) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, businessID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockEventRepository struct{ mock.Mock }

func (m *MockEventRepository) Append(ctx context.Context, event *delivery.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) ListByDelivery(ctx context.Context, deliveryID kernel.UUID) ([]*delivery.Event, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Event), args.Error(1)
}

type MockChargeRepository struct{ mock.Mock }

func (m *MockChargeRepository) AddIfAbsent(ctx context.Context, charge *billing.Charge) (bool, error) {
	args := m.Called(ctx, charge)
	return args.Bool(0), args.Error(1)
}

func (m *MockChargeRepository) Update(ctx context.Context, charge *billing.Charge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockChargeRepository) GetByDelivery(ctx context.Context, deliveryID kernel.UUID) (*billing.Charge, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Charge), args.Error(1)
}

func (m *MockChargeRepository) DeleteByDelivery(ctx context.Context, deliveryID kernel.UUID) error {
	args := m.Called(ctx, deliveryID)
	return args.Error(0)
}

func (m *MockChargeRepository) IsBilled(ctx context.Context, deliveryID kernel.UUID) (bool, error) {
	args := m.Called(ctx, deliveryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockChargeRepository) GetUnbilledForPeriod(ctx context.Context, businessID kernel.UUID, from, to time.Time) ([]*billing.Charge, error) {
	args := m.Called(ctx, businessID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Charge), args.Error(1)
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

type MockBusinessRepository struct{ mock.Mock }

func (m *MockBusinessRepository) Get(ctx context.Context, id kernel.UUID) (*business.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*business.Business), args.Error(1)
}

type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUnitOfWork) EventRepository() ports.EventRepository {
	args := m.Called()
	return args.Get(0).(ports.EventRepository)
}

func (m *MockUnitOfWork) ChargeRepository() ports.ChargeRepository {
	args := m.Called()
	return args.Get(0).(ports.ChargeRepository)
}

func (m *MockUnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	args := m.Called()
	return args.Get(0).(ports.InvoiceRepository)
}

func (m *MockUnitOfWork) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

func (m *MockUnitOfWork) BusinessRepository() ports.BusinessRepository {
	args := m.Called()
	return args.Get(0).(ports.BusinessRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockCreateDeliveryUoWFactory struct{ mock.Mock }

func (m *MockCreateDeliveryUoWFactory) Create() commands.CreateDeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateDeliveryUoW)
}

type MockProgressUoWFactory struct{ mock.Mock }

func (m *MockProgressUoWFactory) Create() commands.ProgressUoW {
	args := m.Called()
	return args.Get(0).(commands.ProgressUoW)
}

type MockFeeUoWFactory struct{ mock.Mock }

func (m *MockFeeUoWFactory) Create() commands.FeeUoW {
	args := m.Called()
	return args.Get(0).(commands.FeeUoW)
}

type MockBillingUoWFactory struct{ mock.Mock }

func (m *MockBillingUoWFactory) Create() commands.BillingUoW {
	args := m.Called()
	return args.Get(0).(commands.BillingUoW)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Dispatch(phone, text string) {
	m.Called(phone, text)
}

// Fixture helpers shared by the handler tests.

func staffActor() actor.Actor {
	a, _ := actor.NewActor(kernel.NewUUID(), actor.RoleStaff)
	return a
}

func riderActor(id kernel.UUID) actor.Actor {
	a, _ := actor.NewActor(id, actor.RoleRider)
	return a
}

func testWaypoint(name string) delivery.Waypoint {
	w, _ := delivery.NewWaypoint(name, "+35799000000", "1 Main St")
	return w
}

// createdDelivery builds a staff-created delivery in the Created status.
func createdDelivery(t *testing.T, id kernel.UUID) *delivery.Delivery {
	t.Helper()

	d, err := delivery.NewDelivery(
		id, kernel.NewUUID(),
		testWaypoint("Warehouse 4"), testWaypoint("Cafe Aroma"),
		"two crates of supplies",
		decimal.Zero,
		staffActor(),
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return d
}

// pendingDelivery builds a rider-created delivery awaiting confirmation.
func pendingDelivery(t *testing.T, id, riderID kernel.UUID) *delivery.Delivery {
	t.Helper()

	d, err := delivery.NewDelivery(
		id, kernel.NewUUID(),
		testWaypoint("Warehouse 4"), testWaypoint("Cafe Aroma"),
		"two crates of supplies",
		decimal.Zero,
		riderActor(riderID),
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return d
}

// assignedDelivery restores a delivery mid-execution with the given rider and fee.
func assignedDelivery(t *testing.T, id, riderID kernel.UUID, status delivery.Status, fee decimal.Decimal) *delivery.Delivery {
	t.Helper()

	d, err := delivery.RestoreDelivery(
		id, kernel.NewUUID(),
		testWaypoint("Warehouse 4"), testWaypoint("Cafe Aroma"),
		"two crates of supplies",
		fee,
		status,
		&riderID,
		kernel.NewUUID(),
		time.Now().UTC().Add(-time.Hour),
		nil,
	)
	require.NoError(t, err)
	return d
}
