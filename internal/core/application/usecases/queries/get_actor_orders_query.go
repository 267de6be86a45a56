package queries

import (
	"errors"
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/guard"
)

var (
	ErrGetActorOrdersQueryIsNotConstructed = errors.New(
		"GetActorOrdersQuery must be created via NewGetActorOrdersQuery constructor",
	)
	ErrRoleHasNoOrderView = errors.New("role has no order view")
)

// GetActorOrdersQuery retrieves the orders visible to one actor: a client
// sees the orders they placed, a business sees the orders it fulfills, an
// agent sees the orders assigned to them.
//
// Example:
//
//	query, err := NewGetActorOrdersQuery(order.RoleAgent, agentID)
//	if err != nil {
//	    return fmt.Errorf("invalid query: %w", err)
//	}
//
//	handler := NewGetActorOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, query)
type GetActorOrdersQuery struct {
	actorRole order.Role
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActorOrdersQuery creates a query for one actor's orders.
// Only client, business, and agent roles have an order view; other roles get
// ErrRoleHasNoOrderView.
func NewGetActorOrdersQuery(actorRole order.Role, actorID kernel.UUID) (GetActorOrdersQuery, error) {
	switch actorRole {
	case order.RoleClient, order.RoleBusiness, order.RoleAgent:
	default:
		return GetActorOrdersQuery{}, ErrRoleHasNoOrderView
	}
	if err := actorID.Validate(); err != nil {
		return GetActorOrdersQuery{}, err
	}

	return GetActorOrdersQuery{
		actorRole: actorRole,
		actorID:   actorID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActorOrdersQueryIsNotConstructed if validation fails.
func (q GetActorOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActorOrdersQueryIsNotConstructed)
}

// ActorRole returns the role whose view is requested.
func (q GetActorOrdersQuery) ActorRole() order.Role {
	return q.actorRole
}

// ActorID returns the identifier of the actor.
func (q GetActorOrdersQuery) ActorID() kernel.UUID {
	return q.actorID
}

// GetActorOrdersQueryResponse represents one order in an actor's view.
type GetActorOrdersQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	Status        order.Status
	PaymentStatus order.PaymentStatus
	TotalAmount   kernel.Money
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
