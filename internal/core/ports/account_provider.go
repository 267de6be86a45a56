package ports

import (
	"context"
	"errors"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/services"
)

// ErrInsufficientFunds is returned by PlaceHold when the agent's available
// balance does not cover the requested amount. Callers treat it as a flow
// branch (start a top-up), not a failure.
var ErrInsufficientFunds = errors.New("insufficient funds")

// AgentAccount is a read model of an agent's money account.
type AgentAccount struct {
	AgentID          kernel.UUID
	Tier             services.AgentTier
	AvailableBalance kernel.Money
	WithheldBalance  kernel.Money
}

// AccountProvider defines the contract for moving money on agent accounts.
// Implementations run inside the unit of work so balance movements commit or
// roll back together with the order transition that caused them.
type AccountProvider interface {
	// GetAccount retrieves the agent's account with balances and tier.
	// Returns errs.ObjectNotFoundError when the agent has no account.
	GetAccount(ctx context.Context, agentID kernel.UUID) (AgentAccount, error)

	// PlaceHold moves amount from the available to the withheld balance.
	// Returns ErrInsufficientFunds when the available balance is short.
	PlaceHold(ctx context.Context, agentID kernel.UUID, amount kernel.Money) error

	// ReleaseHold moves amount from the withheld back to the available balance.
	ReleaseHold(ctx context.Context, agentID kernel.UUID, amount kernel.Money) error

	// CaptureHold removes amount from the withheld balance, settling it to
	// the platform.
	CaptureHold(ctx context.Context, agentID kernel.UUID, amount kernel.Money) error

	// Credit adds amount to the available balance. Used for delivery
	// payments, completed top-ups, and top-up compensation.
	Credit(ctx context.Context, agentID kernel.UUID, amount kernel.Money) error
}
