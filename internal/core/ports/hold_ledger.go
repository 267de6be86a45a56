package ports

import (
	"context"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/hold"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
)

// HoldLedger defines the persistence contract for order holds.
// The storage enforces the at-most-one-active-hold-per-order invariant with a
// partial unique index on the active rows; Add surfaces a violation as
// errs.ConflictError.
type HoldLedger interface {
	// Add persists a new hold. Returns errs.ConflictError when an active
	// hold already exists for the order.
	Add(ctx context.Context, aggregate *hold.OrderHold) error

	// Update persists a settlement (release or capture) of an existing hold.
	Update(ctx context.Context, aggregate *hold.OrderHold) error

	// GetActiveByOrder retrieves the active hold for an order.
	// Returns errs.ObjectNotFoundError when the order has no active hold.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*hold.OrderHold, error)
}
