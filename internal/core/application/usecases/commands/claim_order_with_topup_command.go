package commands

import (
	"errors"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/guard"
)

var (
	ErrClaimOrderWithTopupCommandIsNotConstructed = errors.New(
		"ClaimOrderWithTopupCommand must be created via NewClaimOrderWithTopupCommand constructor",
	)
	ErrPhoneIsRequired = errors.New("phone is required")
)

// ClaimOrderWithTopupCommand represents an agent's request to claim an order
// whose hold the agent cannot cover, funding the shortfall with a mobile
// money request-to-pay. The order is NOT reserved while the collection is
// pending; the claim is retried when the money arrives.
//
// Example:
//
//	cmd, err := NewClaimOrderWithTopupCommand(orderID, agentID, "+237670000001")
//	if err != nil {
//	    return fmt.Errorf("invalid top-up request: %w", err)
//	}
//
//	handler := NewClaimOrderWithTopupCommandHandler(uowFactory, calculator, payments)
//	correlationID, err := handler.Handle(ctx, cmd)
type ClaimOrderWithTopupCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID kernel.UUID
	phone   string

	guard guard.ConstructorGuard
}

// NewClaimOrderWithTopupCommand creates a command for a claim funded by a
// top-up collection from the given MSISDN.
func NewClaimOrderWithTopupCommand(
	orderID kernel.UUID,
	agentID kernel.UUID,
	phone string,
) (ClaimOrderWithTopupCommand, error) {
	cmd := ClaimOrderWithTopupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAgentID(agentID),
		cmd.setPhone(phone),
	); err != nil {
		return ClaimOrderWithTopupCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimOrderWithTopupCommandIsNotConstructed if validation fails.
func (c ClaimOrderWithTopupCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderWithTopupCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to claim.
func (c ClaimOrderWithTopupCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the identifier of the claiming agent.
func (c ClaimOrderWithTopupCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Phone returns the payer's MSISDN for the collection.
func (c ClaimOrderWithTopupCommand) Phone() string {
	return c.phone
}

func (c *ClaimOrderWithTopupCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderWithTopupCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *ClaimOrderWithTopupCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}

	c.phone = phone
	return nil
}
