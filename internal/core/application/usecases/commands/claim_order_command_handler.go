package commands

import (
	"context"
	"errors"
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/hold"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/services"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"
)

var ErrOrderAlreadyClaimed = errors.New("order already claimed")

// ClaimOrderCommandHandler orchestrates the claim protocol:
//
//  1. Load the order and validate the claim through the aggregate.
//  2. Take the assignment with a conditional update on the order row; out of
//     any number of concurrent claimants exactly one succeeds, the rest get
//     ErrOrderAlreadyClaimed with nothing written.
//  3. Withhold the calculated amount on the winner's account
//     (ports.ErrInsufficientFunds branches to the top-up flow).
//
// Example:
//
//	handler := NewClaimOrderCommandHandler(uowFactory, services.NewHoldCalculator())
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ports.ErrInsufficientFunds) {
//	    // initiate ClaimOrderWithTopupCommand instead
//	}
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	calculator services.HoldCalculator
}

// NewClaimOrderCommandHandler creates a handler for claim operations.
// Requires an OrderUoWFactory and the hold calculator.
func NewClaimOrderCommandHandler(
	uowFactory OrderUoWFactory,
	calculator services.HoldCalculator,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
	}
}

// Handle processes the claim command.
// Returns ErrOrderAlreadyClaimed when the conditional update loses the race
// and ports.ErrInsufficientFunds when the agent's balance is short; in both
// cases nothing is persisted.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	if err := claimOrder(ctx, uow, h.calculator, cmd.OrderID(), cmd.AgentID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// claimOrder runs the claim protocol inside an already-begun unit of work.
// Shared with the top-up completion handler, which retries the same protocol
// after the collected money arrives.
func claimOrder(
	ctx context.Context,
	uow OrderUoW,
	calculator services.HoldCalculator,
	orderID kernel.UUID,
	agentID kernel.UUID,
) error {
	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	actor, err := order.NewActor(order.RoleAgent, agentID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if _, err = aggregate.Apply(actor, order.ActionClaim, "", now); err != nil {
		if errors.Is(err, errs.ErrResourceConflict) {
			return ErrOrderAlreadyClaimed
		}
		return err
	}

	accounts := uow.AccountProvider()
	account, err := accounts.GetAccount(ctx, agentID)
	if err != nil {
		return err
	}

	breakdown, err := calculator.CalculateForTier(account.Tier, aggregate.Subtotal())
	if err != nil {
		return err
	}

	// The conditional update is the authority on who wins; the in-memory
	// Apply above only pre-validates against the loaded snapshot. It runs
	// before any money movement so a lost race writes nothing.
	if err = orderRepo.ClaimForAgent(ctx, orderID, agentID); err != nil {
		if errors.Is(err, errs.ErrResourceConflict) {
			return ErrOrderAlreadyClaimed
		}
		return err
	}

	// Internal agents carry no hold; everyone else must cover the total.
	if !breakdown.TotalCharge.IsZero() {
		if err = accounts.PlaceHold(ctx, agentID, breakdown.TotalCharge); err != nil {
			return err
		}

		orderHold, holdErr := hold.NewOrderHold(
			kernel.NewUUID(), orderID, agentID,
			breakdown.HoldAmount, breakdown.ChargeAmount, breakdown.TotalCharge,
			now,
		)
		if holdErr != nil {
			return holdErr
		}
		if err = uow.HoldLedger().Add(ctx, orderHold); err != nil {
			return err
		}
	}

	return orderRepo.Update(ctx, aggregate)
}
