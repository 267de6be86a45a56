package commands

import (
	"context"
	"errors"
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"
)

var ErrOrderNotFound = errors.New("order not found")

// ChangeOrderStatusCommandHandler orchestrates a single order transition.
// Loads the order, applies the action through the aggregate, persists the
// result, and settles the money side effects keyed by the reached status.
//
// Side effects by reached status:
//   - delivered: the delivery fee is credited to the agent; the hold stays
//     active until completion
//   - complete: the agent's hold is captured by the platform
//   - ready_for_pickup: the agent's hold is released if one is active
//     (an agent dropping the order gives the withheld funds back)
//   - failed: the agent's hold is released
//   - cancelled: the agent's hold is released if one is active
//   - refunded: the agent's hold is released if one is active
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderNotFound):
//	    log.Println("No such order")
//	case errors.Is(err, errs.ErrUnauthorized):
//	    log.Println("Actor does not own the order")
//	case err != nil:
//	    log.Printf("Transition failed: %v", err)
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for order transitions.
// Requires an OrderUoWFactory for coordinating transactional updates across
// the order, hold ledger, and agent account.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command.
// The order update and its settlement side effects commit atomically; on any
// failure the transaction rolls back and the order is unchanged.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := transitionOrder(ctx, uow, cmd.OrderID(), cmd.Actor(), cmd.Action(), cmd.Notes()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// transitionOrder applies one action to one order inside an already-begun
// unit of work: load, Apply, persist, settle. Shared by the single and batch
// transition handlers.
func transitionOrder(
	ctx context.Context,
	uow OrderUoW,
	orderID kernel.UUID,
	actor order.Actor,
	action order.Action,
	notes string,
) error {
	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if _, err = aggregate.Apply(actor, action, notes, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return settleReachedStatus(ctx, uow, aggregate, now)
}

// settleReachedStatus performs the money movements implied by the status the
// order just reached. Orders that never had a hold (internal-tier agents,
// cancellations before claim) settle as no-ops.
func settleReachedStatus(ctx context.Context, uow OrderUoW, aggregate *order.Order, now time.Time) error {
	switch aggregate.Status() {
	case order.StatusDelivered:
		return creditDeliveryPayment(ctx, uow, aggregate)
	case order.StatusComplete:
		return captureOrderHold(ctx, uow, aggregate, now)
	case order.StatusReadyForPickup, order.StatusFailed,
		order.StatusCancelled, order.StatusRefunded:
		return releaseOrderHold(ctx, uow, aggregate, now)
	default:
		return nil
	}
}

func releaseOrderHold(ctx context.Context, uow OrderUoW, aggregate *order.Order, now time.Time) error {
	ledger := uow.HoldLedger()

	activeHold, err := ledger.GetActiveByOrder(ctx, aggregate.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = activeHold.Release(now); err != nil {
		return err
	}
	if err = ledger.Update(ctx, activeHold); err != nil {
		return err
	}

	return uow.AccountProvider().ReleaseHold(ctx, activeHold.AgentID(), activeHold.TotalAmount())
}

func captureOrderHold(ctx context.Context, uow OrderUoW, aggregate *order.Order, now time.Time) error {
	ledger := uow.HoldLedger()

	activeHold, err := ledger.GetActiveByOrder(ctx, aggregate.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = activeHold.Capture(now); err != nil {
		return err
	}
	if err = ledger.Update(ctx, activeHold); err != nil {
		return err
	}

	return uow.AccountProvider().CaptureHold(ctx, activeHold.AgentID(), activeHold.TotalAmount())
}

func creditDeliveryPayment(ctx context.Context, uow OrderUoW, aggregate *order.Order) error {
	agentID := aggregate.AssignedAgentID()
	if agentID == nil {
		return nil
	}
	if aggregate.DeliveryFee().IsZero() {
		return nil
	}

	return uow.AccountProvider().Credit(ctx, *agentID, aggregate.DeliveryFee())
}
