package cmd

import (
	"fmt"
	"log/slog"

	adapterhttp "github.com/B-T-Group/renda-sua-sub003/internal/adapters/in/http"
	"github.com/B-T-Group/renda-sua-sub003/internal/adapters/out/payment"
	"github.com/B-T-Group/renda-sua-sub003/internal/adapters/out/postgres"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/application/usecases/commands"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/application/usecases/queries"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/services"
	"github.com/B-T-Group/renda-sua-sub003/internal/jobs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	calculator services.HoldCalculator
	payments   *payment.MobileMoneyClient
	notifier   *payment.LogNotifier
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	holdPct, err := decimal.NewFromString(config.HoldPercentage)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid hold percentage %q: %w", config.HoldPercentage, err)
	}
	chargePct, err := decimal.NewFromString(config.ChargePercentage)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid charge percentage %q: %w", config.ChargePercentage, err)
	}
	calculator, err := services.NewHoldCalculatorWithPercentages(holdPct, chargePct)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		calculator: calculator,
		payments:   payment.NewMobileMoneyClient(config.PaymentBaseURL, config.PaymentAPIKey),
		notifier:   payment.NewLogNotifier(logger),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.calculator)
}

func (c *CompositionRoot) CreateClaimOrderWithTopupCommandHandler() commands.ClaimOrderWithTopupCommandHandler {
	return commands.NewClaimOrderWithTopupCommandHandler(c.topupUoWFactory(), c.calculator, c.payments)
}

func (c *CompositionRoot) CreateCompleteTopupCommandHandler() commands.CompleteTopupCommandHandler {
	return commands.NewCompleteTopupCommandHandler(c.topupUoWFactory(), c.calculator, c.notifier)
}

func (c *CompositionRoot) CreateBatchChangeStatusCommandHandler() commands.BatchChangeStatusCommandHandler {
	return commands.NewBatchChangeStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActorOrdersQueryHandler() queries.GetActorOrdersQueryHandler {
	return queries.NewGetActorOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateClaimOrderCommandHandler(),
		c.CreateClaimOrderWithTopupCommandHandler(),
		c.CreateCompleteTopupCommandHandler(),
		c.CreateBatchChangeStatusCommandHandler(),
		c.CreateGetOpenOrdersQueryHandler(),
		c.CreateGetActorOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager(config Config) *jobs.JobManager {
	return jobs.NewJobManager(
		c.topupUoWFactory(),
		c.payments,
		c.CreateCompleteTopupCommandHandler(),
		config.TopupReconciliationSchedule,
		c.logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) topupUoWFactory() commands.TopupUoWFactory {
	return FuncTopupUoWFactory(func() commands.TopupUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTopupUoWFactory func() commands.TopupUoW

func (f FuncTopupUoWFactory) Create() commands.TopupUoW {
	return f()
}
