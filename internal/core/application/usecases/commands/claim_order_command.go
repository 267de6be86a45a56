package commands

import (
	"errors"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents an agent's request to take exclusive delivery
// responsibility for an order in ready_for_pickup status.
//
// Example:
//
//	cmd, err := NewClaimOrderCommand(orderID, agentID)
//	if err != nil {
//	    return fmt.Errorf("invalid claim request: %w", err)
//	}
//
//	handler := NewClaimOrderCommandHandler(uowFactory, calculator)
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderAlreadyClaimed):
//	    // another agent won the race
//	case errors.Is(err, ports.ErrInsufficientFunds):
//	    // offer the top-up flow
//	}
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command for an agent to claim an order.
// Validates that both identifiers are properly constructed.
func NewClaimOrderCommand(orderID kernel.UUID, agentID kernel.UUID) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAgentID(agentID),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimOrderCommandIsNotConstructed if validation fails.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to claim.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the identifier of the claiming agent.
func (c ClaimOrderCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}
