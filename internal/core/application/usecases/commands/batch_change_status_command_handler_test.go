package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/application/usecases/commands"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/hold"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/ports"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBatchStore backs batch handler tests with a shared in-memory order
// table. Every Create returns the same store; Begin and Commit are no-ops, so
// isolation comes from the handler's per-order orchestration, which is what
// the tests exercise.
type fakeBatchStore struct {
	mu         sync.Mutex
	clientID   kernel.UUID
	businessID kernel.UUID
	statuses   map[kernel.UUID]order.Status
}

func newFakeBatchStore() *fakeBatchStore {
	return &fakeBatchStore{
		clientID:   kernel.NewUUID(),
		businessID: kernel.NewUUID(),
		statuses:   make(map[kernel.UUID]order.Status),
	}
}

func (s *fakeBatchStore) add(status order.Status) kernel.UUID {
	id := kernel.NewUUID()
	s.statuses[id] = status
	return id
}

func (s *fakeBatchStore) Begin(context.Context) error    { return nil }
func (s *fakeBatchStore) Commit(context.Context) error   { return nil }
func (s *fakeBatchStore) Rollback(context.Context) error { return nil }

func (s *fakeBatchStore) OrderRepository() ports.OrderRepository { return (*fakeBatchOrderRepo)(s) }
func (s *fakeBatchStore) HoldLedger() ports.HoldLedger           { return (*fakeBatchLedger)(s) }
func (s *fakeBatchStore) AccountProvider() ports.AccountProvider { return fakeBatchAccounts{} }

type fakeBatchOrderRepo fakeBatchStore

func (r *fakeBatchOrderRepo) Add(context.Context, *order.Order) error { return nil }

func (r *fakeBatchOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s := (*fakeBatchStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.statuses[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	money := func(v float64) kernel.Money {
		m, _ := kernel.MoneyFromFloat(v, "XAF")
		return m
	}
	return order.RestoreOrder(
		id, "ORD-4001", s.clientID, s.businessID, nil,
		money(1000), money(150), money(50), money(1200),
		status, order.PaymentStatusPending, nil, now, now,
	)
}

func (r *fakeBatchOrderRepo) Update(_ context.Context, o *order.Order) error {
	s := (*fakeBatchStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[o.ID()] = o.Status()
	return nil
}

func (r *fakeBatchOrderRepo) ClaimForAgent(context.Context, kernel.UUID, kernel.UUID) error {
	return nil
}

type fakeBatchLedger fakeBatchStore

func (l *fakeBatchLedger) Add(context.Context, *hold.OrderHold) error    { return nil }
func (l *fakeBatchLedger) Update(context.Context, *hold.OrderHold) error { return nil }

func (l *fakeBatchLedger) GetActiveByOrder(_ context.Context, orderID kernel.UUID) (*hold.OrderHold, error) {
	return nil, errs.NewObjectNotFoundError("orderID", orderID)
}

type fakeBatchAccounts struct{}

func (fakeBatchAccounts) GetAccount(_ context.Context, agentID kernel.UUID) (ports.AgentAccount, error) {
	return ports.AgentAccount{}, errs.NewObjectNotFoundError("agentID", agentID)
}

func (fakeBatchAccounts) PlaceHold(context.Context, kernel.UUID, kernel.Money) error   { return nil }
func (fakeBatchAccounts) ReleaseHold(context.Context, kernel.UUID, kernel.Money) error { return nil }
func (fakeBatchAccounts) CaptureHold(context.Context, kernel.UUID, kernel.Money) error { return nil }
func (fakeBatchAccounts) Credit(context.Context, kernel.UUID, kernel.Money) error      { return nil }

type fakeBatchUoWFactory struct{ store *fakeBatchStore }

func (f *fakeBatchUoWFactory) Create() commands.OrderUoW { return f.store }

func TestBatchChangeStatusCommandHandler_Handle_MixedResults(t *testing.T) {
	ctx := t.Context()
	store := newFakeBatchStore()

	eligible := store.add(order.StatusPending)
	ineligible := store.add(order.StatusDelivered)
	missing := kernel.NewUUID()

	actor := mustActor(t, order.RoleBusiness, store.businessID)
	cmd, err := commands.NewBatchChangeStatusCommand(
		[]kernel.UUID{eligible, ineligible, missing}, actor, order.ActionConfirm, "", 2)
	require.NoError(t, err)

	handler := commands.NewBatchChangeStatusCommandHandler(&fakeBatchUoWFactory{store: store})
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, result.Results, 3)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 2, result.Failed)

	assert.NoError(t, result.Results[eligible].Err)
	assert.ErrorIs(t, result.Results[ineligible].Err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, result.Results[missing].Err, commands.ErrOrderNotFound)

	// Only the eligible order changed; the ineligible one is untouched.
	assert.Equal(t, order.StatusConfirmed, store.statuses[eligible])
	assert.Equal(t, order.StatusDelivered, store.statuses[ineligible])
}

func TestBatchChangeStatusCommandHandler_Handle_DuplicateIDsProcessedOnce(t *testing.T) {
	ctx := t.Context()
	store := newFakeBatchStore()
	first := store.add(order.StatusPending)
	second := store.add(order.StatusPending)

	actor := mustActor(t, order.RoleBusiness, store.businessID)
	cmd, err := commands.NewBatchChangeStatusCommand(
		[]kernel.UUID{first, second, first, first}, actor, order.ActionConfirm, "", 1)
	require.NoError(t, err)

	// The constructor keeps one id per distinct order, first occurrence wins.
	assert.Equal(t, []kernel.UUID{first, second}, cmd.OrderIDs())

	handler := commands.NewBatchChangeStatusCommandHandler(&fakeBatchUoWFactory{store: store})
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, result.Results, len(cmd.OrderIDs()))
	assert.Equal(t, 2, result.Succeeded+result.Failed)
	assert.Equal(t, order.StatusConfirmed, store.statuses[first])
	assert.Equal(t, order.StatusConfirmed, store.statuses[second])
}

func TestBatchChangeStatusCommandHandler_Handle_ManyOrdersBoundedParallel(t *testing.T) {
	ctx := t.Context()
	store := newFakeBatchStore()

	const count = 50
	ids := make([]kernel.UUID, 0, count)
	for range count {
		ids = append(ids, store.add(order.StatusPending))
	}

	actor := mustActor(t, order.RoleBusiness, store.businessID)
	cmd, err := commands.NewBatchChangeStatusCommand(ids, actor, order.ActionConfirm, "bulk confirm", 8)
	require.NoError(t, err)

	handler := commands.NewBatchChangeStatusCommandHandler(&fakeBatchUoWFactory{store: store})
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, count, result.Succeeded)
	assert.Zero(t, result.Failed)
	for _, id := range ids {
		assert.Equal(t, order.StatusConfirmed, store.statuses[id])
	}
}

func TestBatchChangeStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	handler := commands.NewBatchChangeStatusCommandHandler(&fakeBatchUoWFactory{store: newFakeBatchStore()})

	var cmd commands.BatchChangeStatusCommand // zero-value command
	_, err := handler.Handle(t.Context(), cmd)

	require.Error(t, err)
	assert.Equal(t, commands.ErrBatchChangeStatusCommandIsNotConstructed, err)
}

func TestBatchChangeStatusCommand_New_RejectsInvalidInput(t *testing.T) {
	store := newFakeBatchStore()
	actor := mustActor(t, order.RoleBusiness, store.businessID)

	_, err := commands.NewBatchChangeStatusCommand(nil, actor, order.ActionConfirm, "", 1)
	assert.ErrorIs(t, err, commands.ErrOrderIDsAreRequired)

	_, err = commands.NewBatchChangeStatusCommand(
		[]kernel.UUID{kernel.NewUUID()}, actor, order.ActionClaim, "", 1)
	assert.ErrorIs(t, err, commands.ErrClaimNotAllowedHere)
}
