package ports

import (
	"context"
	"errors"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
)

// ErrExternalService wraps failures of outbound collaborators (the mobile
// money provider). Callers classify with errors.Is and surface 502-style
// responses instead of treating the failure as a domain error.
var ErrExternalService = errors.New("external service error")

// CollectionState is the provider-side state of a request-to-pay.
type CollectionState string

const (
	// CollectionPending means the payer has not approved the collection yet.
	CollectionPending CollectionState = "pending"

	// CollectionSuccessful means the money arrived.
	CollectionSuccessful CollectionState = "successful"

	// CollectionFailed means the payer rejected or the collection expired.
	CollectionFailed CollectionState = "failed"
)

// CollectionRequest describes one request-to-pay to initiate.
type CollectionRequest struct {
	// CorrelationID is the caller-chosen external id for the collection,
	// echoed back in callbacks and status polls.
	CorrelationID string

	// Phone is the payer's MSISDN.
	Phone string

	// Amount is the sum to collect.
	Amount kernel.Money

	// PayerMessage is shown to the payer on the approval prompt.
	PayerMessage string
}

// PaymentCollaborator defines the contract with the mobile money provider.
type PaymentCollaborator interface {
	// RequestToPay initiates a collection. The call returns as soon as the
	// provider accepts the request; the collection resolves asynchronously
	// via callback or polling.
	RequestToPay(ctx context.Context, request CollectionRequest) error

	// GetCollectionState polls the provider for the state of a collection.
	GetCollectionState(ctx context.Context, correlationID string) (CollectionState, error)
}
