package queries_test

import (
	"context"
	"testing"
	"time"

	"courierhub/internal/adapters/out/postgres/deliveryrepo"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetDeliveryTimelineQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetDeliveryTimelineQueryHandler
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&deliveryrepo.DeliveryDTO{}, &deliveryrepo.EventDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetDeliveryTimelineQueryHandler(db)
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE deliveries, delivery_events").Error
	suite.Require().NoError(err)
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) TestHandle_UnknownDelivery_ReturnsNotFound() {
	query, err := queries.NewGetDeliveryTimelineQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrNoDeliveryFound)
	suite.Nil(result)
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) TestHandle_DeliveryWithoutEvents_ReturnsEmptySlice() {
	testDelivery := suite.saveTestDelivery()

	query, err := queries.NewGetDeliveryTimelineQuery(testDelivery.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) TestHandle_ReturnsEventsOldestFirst() {
	testDelivery := suite.saveTestDelivery()
	actorID := testDelivery.CreatedBy()
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)

	// Append out of chronological order to prove the handler sorts.
	suite.appendEvent(testDelivery.ID(), delivery.StatusPickedUp, "collected at dock 3", actorID, base.Add(10*time.Minute))
	suite.appendEvent(testDelivery.ID(), delivery.StatusCreated, "delivery created", actorID, base)
	suite.appendEvent(testDelivery.ID(), delivery.StatusInTransit, "", actorID, base.Add(20*time.Minute))

	query, err := queries.NewGetDeliveryTimelineQuery(testDelivery.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	suite.Equal(delivery.StatusCreated, result[0].Status)
	suite.Equal("delivery created", result[0].Note)
	suite.Equal(actorID, result[0].ActorID)
	suite.WithinDuration(base, result[0].CreatedAt, time.Second)

	suite.Equal(delivery.StatusPickedUp, result[1].Status)
	suite.Equal("collected at dock 3", result[1].Note)

	suite.Equal(delivery.StatusInTransit, result[2].Status)
	suite.Empty(result[2].Note)
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) TestHandle_OtherDeliveriesAreNotIncluded() {
	first := suite.saveTestDelivery()
	second := suite.saveTestDelivery()
	now := time.Now().UTC()

	suite.appendEvent(first.ID(), delivery.StatusCreated, "delivery created", first.CreatedBy(), now)
	suite.appendEvent(second.ID(), delivery.StatusCreated, "delivery created", second.CreatedBy(), now)

	query, err := queries.NewGetDeliveryTimelineQuery(first.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetDeliveryTimelineQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetDeliveryTimelineQuery constructor")
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	testDelivery := suite.saveTestDelivery()

	query, err := queries.NewGetDeliveryTimelineQuery(testDelivery.ID())
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) saveTestDelivery() *delivery.Delivery {
	staff, err := actor.NewActor(kernel.NewUUID(), actor.RoleStaff)
	suite.Require().NoError(err)

	pickup, err := delivery.NewWaypoint("Warehouse 4", "+35799000000", "1 Industrial Ave")
	suite.Require().NoError(err)
	dropoff, err := delivery.NewWaypoint("Cafe Aroma", "+35722123456", "12 Ledra St")
	suite.Require().NoError(err)

	testDelivery, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff,
		"two crates of supplies", decimal.Zero, staff, time.Now().UTC(),
	)
	suite.Require().NoError(err)

	repo := deliveryrepo.NewGormDeliveryRepository(suite.db, &mockAggregateTracker{})
	err = repo.Add(context.Background(), testDelivery)
	suite.Require().NoError(err)

	return testDelivery
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) appendEvent(
	deliveryID kernel.UUID,
	status delivery.Status,
	note string,
	actorID kernel.UUID,
	createdAt time.Time,
) {
	event, err := delivery.NewEvent(kernel.NewUUID(), deliveryID, status, note, actorID, createdAt)
	suite.Require().NoError(err)

	repo := deliveryrepo.NewGormEventRepository(suite.db)
	err = repo.Append(context.Background(), event)
	suite.Require().NoError(err)
}

// mockAggregateTracker is a no-op tracker for query tests, which do not
// participate in a unit of work.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
}

func TestGetDeliveryTimelineQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDeliveryTimelineQueryHandlerTestSuite))
}
