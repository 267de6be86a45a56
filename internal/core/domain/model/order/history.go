package order

import (
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
)

// StatusChange is an immutable audit record of one transition.
// Records are append-only: an order's history grows by exactly one entry per
// applied transition, and each entry's PreviousStatus equals the NewStatus of
// the entry before it.
type StatusChange struct {
	OrderID        kernel.UUID
	PreviousStatus Status
	NewStatus      Status
	ActorRole      Role
	ActorID        kernel.UUID
	Notes          string
	Timestamp      time.Time
}
