package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "github.com/B-T-Group/renda-sua-sub003/internal/adapters/out/postgres"
	"github.com/B-T-Group/renda-sua-sub003/internal/adapters/out/postgres/accountrepo"
	"github.com/B-T-Group/renda-sua-sub003/internal/adapters/out/postgres/holdrepo"
	"github.com/B-T-Group/renda-sua-sub003/internal/adapters/out/postgres/orderrepo"
	"github.com/B-T-Group/renda-sua-sub003/internal/adapters/out/postgres/topuprepo"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/hold"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/ports"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.StatusChangeDTO{},
		&holdrepo.OrderHoldDTO{},
		&accountrepo.AgentAccountDTO{},
		&topuprepo.TopupAttemptDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_status_history, order_holds, agent_accounts, topup_attempts",
	).Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.HoldLedger())
	suite.NotNil(uow1.AccountProvider())
	suite.NotNil(uow1.TopupAttemptRepository())
	suite.NotNil(uow2.OrderRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createReadyOrder()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(testOrder.IsEqual(retrievedOrder))

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Order persists after commit, visible to a new unit of work
	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(testOrder.IsEqual(retrievedOrder))
	suite.Equal(order.StatusReadyForPickup, retrievedOrder.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ClaimFlowAcrossRepositories() {
	ctx := context.Background()
	agentID := kernel.NewUUID()
	testOrder := suite.createReadyOrder()

	suite.seedOrder(testOrder)
	suite.seedAccount(agentID, 2000)

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().ClaimForAgent(ctx, testOrder.ID(), agentID)
	suite.Require().NoError(err)

	total := suite.money(828)
	err = uow.AccountProvider().PlaceHold(ctx, agentID, total)
	suite.Require().NoError(err)

	orderHold, err := hold.NewOrderHold(
		kernel.NewUUID(), testOrder.ID(), agentID,
		suite.money(800), suite.money(28), total, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	err = uow.HoldLedger().Add(ctx, orderHold)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// All three changes are visible after commit
	newUow := suite.factory.Create()

	claimed, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusAssignedToAgent, claimed.Status())
	suite.Require().NotNil(claimed.AssignedAgentID())
	suite.True(claimed.AssignedAgentID().IsEqual(agentID))

	account, err := newUow.AccountProvider().GetAccount(ctx, agentID)
	suite.Require().NoError(err)
	suite.True(account.AvailableBalance.IsEqual(suite.money(1172)))
	suite.True(account.WithheldBalance.IsEqual(total))

	activeHold, err := newUow.HoldLedger().GetActiveByOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(activeHold.TotalAmount().IsEqual(total))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	agentID := kernel.NewUUID()
	testOrder := suite.createReadyOrder()

	suite.seedOrder(testOrder)
	suite.seedAccount(agentID, 2000)

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().ClaimForAgent(ctx, testOrder.ID(), agentID)
	suite.Require().NoError(err)

	err = uow.AccountProvider().PlaceHold(ctx, agentID, suite.money(828))
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Nothing persisted: the order is still claimable and the balance intact
	newUow := suite.factory.Create()

	unclaimed, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusReadyForPickup, unclaimed.Status())
	suite.Nil(unclaimed.AssignedAgentID())

	account, err := newUow.AccountProvider().GetAccount(ctx, agentID)
	suite.Require().NoError(err)
	suite.True(account.AvailableBalance.IsEqual(suite.money(2000)))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentClaim_ExactlyOneWins() {
	ctx := context.Background()
	testOrder := suite.createReadyOrder()
	suite.seedOrder(testOrder)

	const claimants = 8
	var wg sync.WaitGroup
	results := make([]error, claimants)

	wg.Add(claimants)
	for i := range claimants {
		go func() {
			defer wg.Done()
			uow := suite.factory.Create()
			results[i] = uow.OrderRepository().ClaimForAgent(ctx, testOrder.ID(), kernel.NewUUID())
		}()
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			suite.Require().ErrorIs(err, errs.ErrResourceConflict)
		}
	}
	suite.Equal(1, winners, "exactly one claimant wins the conditional update")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := suite.createReadyOrder()
	order2 := suite.createReadyOrder()

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.OrderRepository().Add(ctx, order1)
	suite.Require().NoError(err)

	err = uow2.OrderRepository().Add(ctx, order2)
	suite.Require().NoError(err)

	// Each transaction only sees its own changes
	_, err = uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")

	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	_, err = uow2.OrderRepository().Get(ctx, order2.ID())
	suite.Require().NoError(err, "UOW2 should see order2")

	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createReadyOrder()

	// Without Begin, repository operations auto-commit
	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(testOrder.IsEqual(retrievedOrder))
}

func (suite *UnitOfWorkIntegrationTestSuite) money(amount float64) kernel.Money {
	m, err := kernel.MoneyFromFloat(amount, "XAF")
	suite.Require().NoError(err)
	return m
}

// createReadyOrder builds an order in ready-for-pickup status with a
// 1000 XAF subtotal, the claimable baseline for these tests.
func (suite *UnitOfWorkIntegrationTestSuite) createReadyOrder() *order.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	testOrder, err := order.RestoreOrder(
		kernel.NewUUID(), "ORD-"+kernel.NewUUID().String()[:8],
		kernel.NewUUID(), kernel.NewUUID(), nil,
		suite.money(1000), suite.money(150), suite.money(50), suite.money(1200),
		order.StatusReadyForPickup, order.PaymentStatusPending, nil, now, now,
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) seedOrder(testOrder *order.Order) {
	err := suite.factory.Create().OrderRepository().Add(context.Background(), testOrder)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) seedAccount(agentID kernel.UUID, available int64) {
	err := suite.db.Create(&accountrepo.AgentAccountDTO{
		AgentID:          agentID.Bytes(),
		Tier:             "verified",
		AvailableBalance: decimal.NewFromInt(available),
		WithheldBalance:  decimal.Zero,
		Currency:         "XAF",
		UpdatedAt:        time.Now().UTC(),
	}).Error
	suite.Require().NoError(err)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
