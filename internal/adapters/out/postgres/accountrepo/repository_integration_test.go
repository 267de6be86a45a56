package accountrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/adapters/out/postgres/accountrepo"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/services"
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

type AccountProviderIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	provider  *accountrepo.GormAccountProvider
}

func (suite *AccountProviderIntegrationTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&accountrepo.AgentAccountDTO{})
	suite.Require().NoError(err)

	suite.provider = accountrepo.NewGormAccountProvider(db)
}

func (suite *AccountProviderIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE agent_accounts").Error
	suite.Require().NoError(err)
}

func (suite *AccountProviderIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *AccountProviderIntegrationTestSuite) money(amount float64) kernel.Money {
	m, err := kernel.MoneyFromFloat(amount, "XAF")
	suite.Require().NoError(err)
	return m
}

func (suite *AccountProviderIntegrationTestSuite) seedAccount(tier string, available int64) kernel.UUID {
	agentID := kernel.NewUUID()
	err := suite.db.Create(&accountrepo.AgentAccountDTO{
		AgentID:          agentID.Bytes(),
		Tier:             tier,
		AvailableBalance: decimal.NewFromInt(available),
		WithheldBalance:  decimal.Zero,
		Currency:         "XAF",
		UpdatedAt:        time.Now().UTC(),
	}).Error
	suite.Require().NoError(err)
	return agentID
}

func (suite *AccountProviderIntegrationTestSuite) TestGetAccount_ReturnsSnapshot() {
	ctx := context.Background()
	agentID := suite.seedAccount("verified", 2000)

	account, err := suite.provider.GetAccount(ctx, agentID)
	suite.Require().NoError(err)

	suite.True(account.AgentID.IsEqual(agentID))
	suite.Equal(services.TierVerified, account.Tier)
	suite.True(account.AvailableBalance.IsEqual(suite.money(2000)))
	suite.True(account.WithheldBalance.IsEqual(suite.money(0)))
}

func (suite *AccountProviderIntegrationTestSuite) TestGetAccount_NotFound() {
	_, err := suite.provider.GetAccount(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AccountProviderIntegrationTestSuite) TestPlaceHold_MovesAvailableToWithheld() {
	ctx := context.Background()
	agentID := suite.seedAccount("verified", 2000)

	err := suite.provider.PlaceHold(ctx, agentID, suite.money(828))
	suite.Require().NoError(err)

	account, err := suite.provider.GetAccount(ctx, agentID)
	suite.Require().NoError(err)
	suite.True(account.AvailableBalance.IsEqual(suite.money(1172)))
	suite.True(account.WithheldBalance.IsEqual(suite.money(828)))
}

func (suite *AccountProviderIntegrationTestSuite) TestPlaceHold_InsufficientFunds() {
	ctx := context.Background()
	agentID := suite.seedAccount("verified", 500)

	err := suite.provider.PlaceHold(ctx, agentID, suite.money(828))

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, ports.ErrInsufficientFunds)

	// Balance untouched
	account, err := suite.provider.GetAccount(ctx, agentID)
	suite.Require().NoError(err)
	suite.True(account.AvailableBalance.IsEqual(suite.money(500)))
	suite.True(account.WithheldBalance.IsEqual(suite.money(0)))
}

func (suite *AccountProviderIntegrationTestSuite) TestReleaseHold_ReturnsWithheldFunds() {
	ctx := context.Background()
	agentID := suite.seedAccount("verified", 2000)

	err := suite.provider.PlaceHold(ctx, agentID, suite.money(828))
	suite.Require().NoError(err)

	err = suite.provider.ReleaseHold(ctx, agentID, suite.money(828))
	suite.Require().NoError(err)

	account, err := suite.provider.GetAccount(ctx, agentID)
	suite.Require().NoError(err)
	suite.True(account.AvailableBalance.IsEqual(suite.money(2000)))
	suite.True(account.WithheldBalance.IsEqual(suite.money(0)))
}

func (suite *AccountProviderIntegrationTestSuite) TestCaptureHold_RemovesWithheldFunds() {
	ctx := context.Background()
	agentID := suite.seedAccount("verified", 2000)

	err := suite.provider.PlaceHold(ctx, agentID, suite.money(828))
	suite.Require().NoError(err)

	err = suite.provider.CaptureHold(ctx, agentID, suite.money(828))
	suite.Require().NoError(err)

	account, err := suite.provider.GetAccount(ctx, agentID)
	suite.Require().NoError(err)
	suite.True(account.AvailableBalance.IsEqual(suite.money(1172)))
	suite.True(account.WithheldBalance.IsEqual(suite.money(0)))
}

func (suite *AccountProviderIntegrationTestSuite) TestCredit_AddsToAvailableBalance() {
	ctx := context.Background()
	agentID := suite.seedAccount("unverified", 100)

	err := suite.provider.Credit(ctx, agentID, suite.money(328))
	suite.Require().NoError(err)

	account, err := suite.provider.GetAccount(ctx, agentID)
	suite.Require().NoError(err)
	suite.True(account.AvailableBalance.IsEqual(suite.money(428)))
}

func (suite *AccountProviderIntegrationTestSuite) TestPlaceHold_ConcurrentHoldsNeverOverdraw() {
	ctx := context.Background()
	// Room for exactly two 828 holds
	agentID := suite.seedAccount("verified", 1700)

	const attempts = 6
	var wg sync.WaitGroup
	results := make([]error, attempts)

	wg.Add(attempts)
	for i := range attempts {
		go func() {
			defer wg.Done()
			results[i] = suite.provider.PlaceHold(ctx, agentID, suite.money(828))
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			suite.Require().ErrorIs(err, ports.ErrInsufficientFunds)
		}
	}
	suite.Equal(2, succeeded)

	account, err := suite.provider.GetAccount(ctx, agentID)
	suite.Require().NoError(err)
	suite.False(account.AvailableBalance.IsNegative())
	suite.True(account.WithheldBalance.IsEqual(suite.money(1656)))
}

func TestAccountProviderIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AccountProviderIntegrationTestSuite))
}
