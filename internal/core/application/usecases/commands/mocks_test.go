package commands_test

import (
	"context"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/application/usecases/commands"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/hold"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/topup"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepo struct{ mock.Mock }

func (m *MockOrderRepo) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepo) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepo) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepo) ClaimForAgent(ctx context.Context, orderID kernel.UUID, agentID kernel.UUID) error {
	args := m.Called(ctx, orderID, agentID)
	return args.Error(0)
}

type MockHoldLedger struct{ mock.Mock }

func (m *MockHoldLedger) Add(ctx context.Context, h *hold.OrderHold) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHoldLedger) Update(ctx context.Context, h *hold.OrderHold) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHoldLedger) GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*hold.OrderHold, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hold.OrderHold), args.Error(1)
}

type MockAccountProvider struct{ mock.Mock }

func (m *MockAccountProvider) GetAccount(ctx context.Context, agentID kernel.UUID) (ports.AgentAccount, error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).(ports.AgentAccount), args.Error(1)
}

func (m *MockAccountProvider) PlaceHold(ctx context.Context, agentID kernel.UUID, amount kernel.Money) error {
	args := m.Called(ctx, agentID, amount)
	return args.Error(0)
}

func (m *MockAccountProvider) ReleaseHold(ctx context.Context, agentID kernel.UUID, amount kernel.Money) error {
	args := m.Called(ctx, agentID, amount)
	return args.Error(0)
}

func (m *MockAccountProvider) CaptureHold(ctx context.Context, agentID kernel.UUID, amount kernel.Money) error {
	args := m.Called(ctx, agentID, amount)
	return args.Error(0)
}

func (m *MockAccountProvider) Credit(ctx context.Context, agentID kernel.UUID, amount kernel.Money) error {
	args := m.Called(ctx, agentID, amount)
	return args.Error(0)
}

type MockTopupRepo struct{ mock.Mock }

func (m *MockTopupRepo) Add(ctx context.Context, a *topup.Attempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockTopupRepo) Update(ctx context.Context, a *topup.Attempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockTopupRepo) GetByCorrelationID(ctx context.Context, correlationID string) (*topup.Attempt, error) {
	args := m.Called(ctx, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*topup.Attempt), args.Error(1)
}

func (m *MockTopupRepo) GetAllPending(ctx context.Context) ([]*topup.Attempt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*topup.Attempt), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) HoldLedger() ports.HoldLedger {
	args := m.Called()
	return args.Get(0).(ports.HoldLedger)
}

func (m *MockOrderUoW) AccountProvider() ports.AccountProvider {
	args := m.Called()
	return args.Get(0).(ports.AccountProvider)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTopupUoW struct{ MockOrderUoW }

func (m *MockTopupUoW) TopupAttemptRepository() ports.TopupAttemptRepository {
	args := m.Called()
	return args.Get(0).(ports.TopupAttemptRepository)
}

type MockTopupUoWFactory struct{ mock.Mock }

func (m *MockTopupUoWFactory) Create() commands.TopupUoW {
	args := m.Called()
	return args.Get(0).(commands.TopupUoW)
}

type MockPayments struct{ mock.Mock }

func (m *MockPayments) RequestToPay(ctx context.Context, request ports.CollectionRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPayments) GetCollectionState(ctx context.Context, correlationID string) (ports.CollectionState, error) {
	args := m.Called(ctx, correlationID)
	return args.Get(0).(ports.CollectionState), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyAgent(ctx context.Context, agentID kernel.UUID, message string) {
	m.Called(ctx, agentID, message)
}
