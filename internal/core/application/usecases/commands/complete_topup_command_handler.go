package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/services"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/ports"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"
)

var ErrTopupAttemptNotFound = errors.New("topup attempt not found")

// CompleteTopupCommandHandler resolves a pending top-up attempt.
//
// On a successful collection the collected amount is credited to the agent's
// account and the claim protocol is re-run. If the order was claimed by
// another agent meanwhile, the credit stays on the account as compensation,
// the attempt is marked compensated, and the agent is notified. A failed
// collection just marks the attempt failed.
//
// Resolving an attempt that is no longer pending is a no-op, which makes the
// callback and the reconciliation poll safe to race each other.
type CompleteTopupCommandHandler struct {
	uowFactory TopupUoWFactory
	calculator services.HoldCalculator
	notifier   ports.Notifier
}

// NewCompleteTopupCommandHandler creates a handler for top-up resolutions.
// Requires a TopupUoWFactory, the hold calculator, and a notifier for
// compensation messages.
func NewCompleteTopupCommandHandler(
	uowFactory TopupUoWFactory,
	calculator services.HoldCalculator,
	notifier ports.Notifier,
) CompleteTopupCommandHandler {
	return CompleteTopupCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		notifier:   notifier,
	}
}

// Handle processes the top-up resolution command.
// Returns ErrTopupAttemptNotFound when no attempt matches the correlation id.
func (h CompleteTopupCommandHandler) Handle(ctx context.Context, cmd CompleteTopupCommand) error {
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

	topupRepo := uow.TopupAttemptRepository()

	attempt, err := topupRepo.GetByCorrelationID(ctx, cmd.CorrelationID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrTopupAttemptNotFound
	}
	if err != nil {
		return err
	}

	if !attempt.IsPending() {
		return nil
	}

	now := time.Now().UTC()

	if !cmd.Successful() {
		if err = attempt.Fail(now); err != nil {
			return err
		}
		if err = topupRepo.Update(ctx, attempt); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	// The money arrived; it belongs to the agent regardless of how the
	// claim retry goes.
	if err = uow.AccountProvider().Credit(ctx, attempt.AgentID(), attempt.Amount()); err != nil {
		return err
	}

	// A lost race writes nothing inside claimOrder, so continuing in the
	// same transaction is safe. Any other failure (including a grown
	// shortfall) rolls the whole resolution back; the attempt stays pending
	// and the reconciliation job retries it.
	compensated := false
	err = claimOrder(ctx, uow, h.calculator, attempt.OrderID(), attempt.AgentID())
	switch {
	case errors.Is(err, ErrOrderAlreadyClaimed), errors.Is(err, ErrOrderNotFound):
		compensated = true
	case err != nil:
		return err
	}

	if compensated {
		if err = attempt.Compensate(now); err != nil {
			return err
		}
	} else {
		if err = attempt.Complete(now); err != nil {
			return err
		}
	}

	if err = topupRepo.Update(ctx, attempt); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if compensated {
		h.notifier.NotifyAgent(ctx, attempt.AgentID(), fmt.Sprintf(
			"Your top-up of %s was received, but the order is no longer available. The amount was credited to your account.",
			attempt.Amount()))
	}

	return nil
}
