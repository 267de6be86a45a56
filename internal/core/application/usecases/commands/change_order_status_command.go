package commands

import (
	"errors"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrClaimNotAllowedHere = errors.New(
		"claim must go through the claim command",
	)
)

// ChangeOrderStatusCommand represents a request to apply one lifecycle action
// to one order on behalf of an actor. It covers every transition except
// claim, which needs the balance check and conditional update of the
// dedicated claim commands.
//
// Example:
//
//	actor, _ := order.NewActor(order.RoleBusiness, businessID)
//	cmd, err := NewChangeOrderStatusCommand(orderID, actor, order.ActionConfirm, "")
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	action  order.Action
	notes   string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to apply an action to an order.
// Validates the order id, the actor, and the action; rejects the claim action,
// which must go through NewClaimOrderCommand.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	actor order.Actor,
	action order.Action,
	notes string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setAction(action),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party requesting the transition.
func (c ChangeOrderStatusCommand) Actor() order.Actor {
	return c.actor
}

// Action returns the requested lifecycle action.
func (c ChangeOrderStatusCommand) Action() order.Action {
	return c.action
}

// Notes returns the free-text note recorded in the status history.
func (c ChangeOrderStatusCommand) Notes() string {
	return c.notes
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ChangeOrderStatusCommand) setAction(action order.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}
	if action == order.ActionClaim {
		return ErrClaimNotAllowedHere
	}

	c.action = action
	return nil
}
