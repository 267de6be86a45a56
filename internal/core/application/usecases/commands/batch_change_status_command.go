package commands

import (
	"errors"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/guard"
)

var (
	ErrBatchChangeStatusCommandIsNotConstructed = errors.New(
		"BatchChangeStatusCommand must be created via NewBatchChangeStatusCommand constructor",
	)
	ErrOrderIDsAreRequired = errors.New("at least one order id is required")
)

// BatchChangeStatusCommand represents a request to apply one action to many
// orders on behalf of one actor. Each order is processed independently; a
// failure on one never affects the others.
//
// Example:
//
//	cmd, err := NewBatchChangeStatusCommand(orderIDs, actor, order.ActionConfirm, "", 4)
//	if err != nil {
//	    return fmt.Errorf("invalid batch request: %w", err)
//	}
//
//	handler := NewBatchChangeStatusCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
//	log.Printf("batch done: %d succeeded, %d failed", result.Succeeded, result.Failed)
type BatchChangeStatusCommand struct { //nolint:recvcheck //using for validation
	orderIDs    []kernel.UUID
	actor       order.Actor
	action      order.Action
	notes       string
	parallelism int

	guard guard.ConstructorGuard
}

// NewBatchChangeStatusCommand creates a command to apply an action to a set
// of orders. Duplicate order ids are collapsed, keeping the first occurrence,
// so the result carries exactly one entry per distinct order. parallelism
// bounds the number of orders processed concurrently; values below 1 mean
// sequential processing. The claim action is rejected, as in
// NewChangeOrderStatusCommand.
func NewBatchChangeStatusCommand(
	orderIDs []kernel.UUID,
	actor order.Actor,
	action order.Action,
	notes string,
	parallelism int,
) (BatchChangeStatusCommand, error) {
	cmd := BatchChangeStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setActor(actor),
		cmd.setAction(action),
	); err != nil {
		return BatchChangeStatusCommand{}, err
	}

	cmd.notes = notes
	cmd.parallelism = parallelism
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBatchChangeStatusCommandIsNotConstructed if validation fails.
func (c BatchChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrBatchChangeStatusCommandIsNotConstructed)
}

// OrderIDs returns the identifiers of the orders to transition.
func (c BatchChangeStatusCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// Actor returns the party requesting the transitions.
func (c BatchChangeStatusCommand) Actor() order.Actor {
	return c.actor
}

// Action returns the requested lifecycle action.
func (c BatchChangeStatusCommand) Action() order.Action {
	return c.action
}

// Notes returns the free-text note recorded in each status history entry.
func (c BatchChangeStatusCommand) Notes() string {
	return c.notes
}

// Parallelism returns the concurrency bound for processing.
func (c BatchChangeStatusCommand) Parallelism() int {
	return c.parallelism
}

func (c *BatchChangeStatusCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(orderIDs))
	unique := make([]kernel.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	c.orderIDs = unique
	return nil
}

func (c *BatchChangeStatusCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *BatchChangeStatusCommand) setAction(action order.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}
	if action == order.ActionClaim {
		return ErrClaimNotAllowedHere
	}

	c.action = action
	return nil
}
