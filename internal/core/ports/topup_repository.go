package ports

import (
	"context"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/topup"
)

// TopupAttemptRepository defines the persistence contract for top-up attempts.
type TopupAttemptRepository interface {
	// Add persists a new pending attempt.
	Add(ctx context.Context, aggregate *topup.Attempt) error

	// Update persists a resolution of an existing attempt.
	Update(ctx context.Context, aggregate *topup.Attempt) error

	// GetByCorrelationID retrieves an attempt by its external correlation id.
	// Returns errs.ObjectNotFoundError when no attempt matches.
	GetByCorrelationID(ctx context.Context, correlationID string) (*topup.Attempt, error)

	// GetAllPending retrieves attempts still awaiting the payer, oldest
	// first. Used by the reconciliation job.
	GetAllPending(ctx context.Context) ([]*topup.Attempt, error)
}
