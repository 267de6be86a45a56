package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/adapters/out/postgres/orderrepo"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/application/usecases/queries"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(kernel.UUID, any) {}

type GetOpenOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOpenOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.StatusChangeDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOpenOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_status_history").Error
	suite.Require().NoError(err)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) money(amount float64) kernel.Money {
	m, err := kernel.MoneyFromFloat(amount, "XAF")
	suite.Require().NoError(err)
	return m
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) seedOrderAt(
	status order.Status,
	agentID *kernel.UUID,
	createdAt time.Time,
) *order.Order {
	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), "ORD-"+kernel.NewUUID().String()[:8],
		kernel.NewUUID(), kernel.NewUUID(), agentID,
		suite.money(1000), suite.money(150), suite.money(50), suite.money(1200),
		status, order.PaymentStatusPending, nil, createdAt, createdAt,
	)
	suite.Require().NoError(err)

	err = suite.orderRepo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetOpenOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_ReturnsOnlyUnassignedReadyOrders() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	agentID := kernel.NewUUID()

	open1 := suite.seedOrderAt(order.StatusReadyForPickup, nil, now)
	open2 := suite.seedOrderAt(order.StatusReadyForPickup, nil, now.Add(time.Minute))
	suite.seedOrderAt(order.StatusPending, nil, now)
	suite.seedOrderAt(order.StatusAssignedToAgent, &agentID, now)
	suite.seedOrderAt(order.StatusDelivered, &agentID, now)

	query := queries.NewGetOpenOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	resultIDs := make(map[kernel.UUID]bool)
	for _, r := range result {
		resultIDs[r.ID] = true
	}
	suite.True(resultIDs[open1.ID()])
	suite.True(resultIDs[open2.ID()])
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_OldestOrdersFirst() {
	now := time.Now().UTC().Truncate(time.Microsecond)

	newest := suite.seedOrderAt(order.StatusReadyForPickup, nil, now.Add(2*time.Minute))
	oldest := suite.seedOrderAt(order.StatusReadyForPickup, nil, now)
	middle := suite.seedOrderAt(order.StatusReadyForPickup, nil, now.Add(time.Minute))

	query := queries.NewGetOpenOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(oldest.ID(), result[0].ID)
	suite.Equal(middle.ID(), result[1].ID)
	suite.Equal(newest.ID(), result[2].ID)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_MapsOrderFields() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	seeded := suite.seedOrderAt(order.StatusReadyForPickup, nil, now)

	query := queries.NewGetOpenOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(seeded.ID(), result[0].ID)
	suite.Equal(seeded.OrderNumber(), result[0].OrderNumber)
	suite.Equal(seeded.BusinessID(), result[0].BusinessID)
	suite.True(result[0].Subtotal.IsEqual(suite.money(1000)))
	suite.True(result[0].DeliveryFee.IsEqual(suite.money(150)))
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOpenOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetOpenOrdersQuery constructor")
}

func TestGetOpenOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOpenOrdersQueryHandlerTestSuite))
}
