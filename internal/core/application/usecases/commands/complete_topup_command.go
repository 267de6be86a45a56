package commands

import (
	"errors"

	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/guard"
)

var (
	ErrCompleteTopupCommandIsNotConstructed = errors.New(
		"CompleteTopupCommand must be created via NewCompleteTopupCommand constructor",
	)
	ErrCorrelationIDIsRequired = errors.New("correlation id is required")
)

// CompleteTopupCommand represents a resolution of a pending top-up
// collection, coming either from the provider's callback or from the
// reconciliation job's poll.
//
// Example:
//
//	cmd, err := NewCompleteTopupCommand("topup_<id>", true)
//	if err != nil {
//	    return fmt.Errorf("invalid completion: %w", err)
//	}
//
//	handler := NewCompleteTopupCommandHandler(uowFactory, calculator, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("completion failed: %w", err)
//	}
type CompleteTopupCommand struct { //nolint:recvcheck //using for validation
	correlationID string
	successful    bool

	guard guard.ConstructorGuard
}

// NewCompleteTopupCommand creates a command resolving a top-up collection.
// successful reports whether the money arrived; false marks the attempt failed.
func NewCompleteTopupCommand(correlationID string, successful bool) (CompleteTopupCommand, error) {
	if correlationID == "" {
		return CompleteTopupCommand{}, ErrCorrelationIDIsRequired
	}

	return CompleteTopupCommand{
		correlationID: correlationID,
		successful:    successful,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteTopupCommandIsNotConstructed if validation fails.
func (c CompleteTopupCommand) Validate() error {
	return c.guard.Validate(ErrCompleteTopupCommandIsNotConstructed)
}

// CorrelationID returns the external id of the resolved collection.
func (c CompleteTopupCommand) CorrelationID() string {
	return c.correlationID
}

// Successful reports whether the collection succeeded.
func (c CompleteTopupCommand) Successful() bool {
	return c.successful
}
