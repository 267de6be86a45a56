// Package ports defines repository and collaborator interfaces for the order
// delivery domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and claiming order entities
// together with their status history.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including any
	// status history entries appended since it was loaded.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no order exists for the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ClaimForAgent atomically assigns the order to the agent with a
	// conditional update: the row is changed only while it is still in
	// ready_for_pickup status with no assigned agent. Exactly one of any
	// number of concurrent claimants succeeds.
	//
	// Returns errs.ConflictError when the condition no longer holds (the
	// order was claimed, cancelled, or otherwise moved meanwhile) and
	// errs.ObjectNotFoundError when no order exists for the id.
	ClaimForAgent(ctx context.Context, orderID kernel.UUID, agentID kernel.UUID) error
}
