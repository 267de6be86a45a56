package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/topup"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/services"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/ports"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"
)

var ErrTopupNotRequired = errors.New("topup not required")

// ClaimOrderWithTopupCommandHandler starts the top-up funded claim flow.
//
// The handler verifies the order is still claimable, computes the shortfall
// between the agent's available balance and the required hold, records a
// pending top-up attempt keyed by a correlation id, and initiates a
// request-to-pay with the payment provider. The claim itself happens later,
// from the payment completion handler.
//
// Example:
//
//	handler := NewClaimOrderWithTopupCommandHandler(uowFactory, calculator, payments)
//	correlationID, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrTopupNotRequired) {
//	    // the balance covers the hold, use the plain claim command
//	}
type ClaimOrderWithTopupCommandHandler struct {
	uowFactory TopupUoWFactory
	calculator services.HoldCalculator
	payments   ports.PaymentCollaborator
}

// NewClaimOrderWithTopupCommandHandler creates a handler for the top-up flow.
// Requires a TopupUoWFactory, the hold calculator, and the payment provider.
func NewClaimOrderWithTopupCommandHandler(
	uowFactory TopupUoWFactory,
	calculator services.HoldCalculator,
	payments ports.PaymentCollaborator,
) ClaimOrderWithTopupCommandHandler {
	return ClaimOrderWithTopupCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		payments:   payments,
	}
}

// Handle processes the top-up claim command and returns the correlation id of
// the initiated collection.
//
// Returns ErrTopupNotRequired when the agent's balance already covers the
// hold, ErrOrderAlreadyClaimed when the order is no longer claimable, and an
// error wrapping ports.ErrExternalService when the provider rejects the
// request-to-pay.
func (h ClaimOrderWithTopupCommandHandler) Handle(ctx context.Context, cmd ClaimOrderWithTopupCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}

	if !aggregate.IsClaimable() {
		return "", ErrOrderAlreadyClaimed
	}

	account, err := uow.AccountProvider().GetAccount(ctx, cmd.AgentID())
	if err != nil {
		return "", err
	}

	breakdown, err := h.calculator.CalculateForTier(account.Tier, aggregate.Subtotal())
	if err != nil {
		return "", err
	}

	covered, err := account.AvailableBalance.GreaterThanOrEqual(breakdown.TotalCharge)
	if err != nil {
		return "", err
	}
	if covered {
		return "", ErrTopupNotRequired
	}

	shortfall, err := breakdown.TotalCharge.Sub(account.AvailableBalance)
	if err != nil {
		return "", err
	}

	attempt, err := topup.NewAttempt(
		kernel.NewUUID(), cmd.OrderID(), cmd.AgentID(),
		cmd.Phone(), shortfall, time.Now().UTC(),
	)
	if err != nil {
		return "", err
	}

	if err = uow.TopupAttemptRepository().Add(ctx, attempt); err != nil {
		return "", err
	}

	request := ports.CollectionRequest{
		CorrelationID: attempt.CorrelationID(),
		Phone:         cmd.Phone(),
		Amount:        shortfall,
		PayerMessage:  fmt.Sprintf("Top-up to claim order %s", aggregate.OrderNumber()),
	}
	if err = h.payments.RequestToPay(ctx, request); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return attempt.CorrelationID(), nil
}
