package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root for a delivery order. It owns the lifecycle
// state machine, the agent assignment, the payment status and the append-only
// status history.
//
// Invariants maintained by the aggregate:
//   - Status transitions only follow edges of the transition table.
//   - The assigned agent is set exactly once per successful claim and cleared
//     only by a drop; terminal statuses may retain it for audit.
//   - A refund is never applied while the payment status is pending.
//   - Every applied transition appends exactly one StatusChange whose
//     PreviousStatus chains to the prior entry.
//
// Money fields are immutable after construction; refunds and adjustments are
// expressed as explicit events, not in-place edits.
type Order struct {
	id              kernel.UUID
	orderNumber     string
	clientID        kernel.UUID
	businessID      kernel.UUID
	assignedAgentID *kernel.UUID

	subtotal    kernel.Money
	deliveryFee kernel.Money
	taxAmount   kernel.Money
	totalAmount kernel.Money

	status        Status
	paymentStatus PaymentStatus
	history       []StatusChange

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order in pending status with a pending payment.
// The total amount is derived from subtotal, delivery fee and tax; all three
// must share one currency.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	clientID kernel.UUID,
	businessID kernel.UUID,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	taxAmount kernel.Money,
	now time.Time,
) (*Order, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	if err := errors.Join(
		id.Validate(),
		clientID.Validate(),
		businessID.Validate(),
		subtotal.Validate(),
		deliveryFee.Validate(),
		taxAmount.Validate(),
	); err != nil {
		return nil, err
	}

	total, err := subtotal.Add(deliveryFee)
	if err != nil {
		return nil, err
	}
	total, err = total.Add(taxAmount)
	if err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		orderNumber:   orderNumber,
		clientID:      clientID,
		businessID:    businessID,
		subtotal:      subtotal,
		deliveryFee:   deliveryFee,
		taxAmount:     taxAmount,
		totalAmount:   total,
		status:        StatusPending,
		paymentStatus: PaymentStatusPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence.
// It re-validates the status/agent consistency so corrupt rows cannot become
// live aggregates.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	clientID kernel.UUID,
	businessID kernel.UUID,
	assignedAgentID *kernel.UUID,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	taxAmount kernel.Money,
	totalAmount kernel.Money,
	status Status,
	paymentStatus PaymentStatus,
	history []StatusChange,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		clientID.Validate(),
		businessID.Validate(),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveAgent(assignedAgentID != nil); err != nil {
		return nil, err
	}

	return &Order{
		id:              id,
		orderNumber:     orderNumber,
		clientID:        clientID,
		businessID:      businessID,
		assignedAgentID: assignedAgentID,
		subtotal:        subtotal,
		deliveryFee:     deliveryFee,
		taxAmount:       taxAmount,
		totalAmount:     totalAmount,
		status:          status,
		paymentStatus:   paymentStatus,
		history:         history,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// ClientID returns the ordering client's identifier.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// BusinessID returns the fulfilling business's identifier.
func (o *Order) BusinessID() kernel.UUID {
	return o.businessID
}

// AssignedAgentID returns the claiming agent's identifier, or nil when the
// order is unclaimed.
func (o *Order) AssignedAgentID() *kernel.UUID {
	return o.assignedAgentID
}

// Subtotal returns the item subtotal (excludes delivery fee and tax).
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// DeliveryFee returns the delivery fee.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// TaxAmount returns the tax amount.
func (o *Order) TaxAmount() kernel.Money {
	return o.taxAmount
}

// TotalAmount returns subtotal + delivery fee + tax.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// Currency returns the order's currency.
func (o *Order) Currency() kernel.Currency {
	return o.subtotal.Currency()
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// History returns the status change records in chronological order.
func (o *Order) History() []StatusChange {
	return o.history
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// IsClaimable reports whether the order can be claimed by an agent right now:
// ready for pickup with no assigned agent.
func (o *Order) IsClaimable() bool {
	return o.status == StatusReadyForPickup && o.assignedAgentID == nil
}

// CanApply reports whether the role may request the action for the order's
// current status. It consults the transition tables only; ownership and
// payment guards are enforced by Apply.
func (o *Order) CanApply(role Role, action Action) bool {
	return RoleMayApply(role, o.status, action)
}

// Apply validates and applies one transition, mutating the order and
// appending a StatusChange record.
//
// Validation order:
//  1. The action must be permitted for (actor role, current status),
//     otherwise a ValueIsInvalidError is returned.
//  2. The actor must own the order in the capacity the action requires
//     (client, business, or assigned agent); RoleSystem and RoleAdmin bypass
//     ownership. Violations return an UnauthorizedError.
//  3. A refund is rejected with a ValueIsInvalidError while the payment
//     status is pending, regardless of current status.
//  4. A claim on an order that already has an agent returns a ConflictError.
//     This is the validation-time check; the commit-time guarantee is the
//     conditional update in the order repository.
//
// On success the returned StatusChange is the record that was appended to the
// order's history. On failure the order is left unchanged.
func (o *Order) Apply(actor Actor, action Action, notes string, now time.Time) (StatusChange, error) {
	if err := o.Validate(); err != nil {
		return StatusChange{}, err
	}
	if err := actor.Validate(); err != nil {
		return StatusChange{}, err
	}
	if err := action.Validate(); err != nil {
		return StatusChange{}, err
	}

	if !RoleMayApply(actor.Role(), o.status, action) {
		return StatusChange{}, errs.NewValueIsInvalidErrorWithCause("transition is invalid",
			fmt.Errorf("%s may not %s an order in %s status", actor.Role(), action, o.status))
	}

	if err := o.checkOwnership(actor, action); err != nil {
		return StatusChange{}, err
	}

	if action == ActionRefund && o.paymentStatus == PaymentStatusPending {
		return StatusChange{}, errs.NewValueIsInvalidErrorWithCause("transition is invalid",
			fmt.Errorf("order %s cannot be refunded while payment is pending", o.orderNumber))
	}

	if action == ActionClaim && o.assignedAgentID != nil {
		return StatusChange{}, errs.NewConflictErrorWithCause("order", o.id.String(),
			fmt.Errorf("order %s is already claimed", o.orderNumber))
	}

	next, ok := NextStatus(o.status, action)
	if !ok {
		return StatusChange{}, errs.NewValueIsInvalidErrorWithCause("transition is invalid",
			fmt.Errorf("no %s edge from %s status", action, o.status))
	}

	previous := o.status
	o.status = next

	switch action {
	case ActionClaim:
		agentID := actor.ID()
		o.assignedAgentID = &agentID
	case ActionDrop:
		o.assignedAgentID = nil
	case ActionComplete:
		o.paymentStatus = PaymentStatusPaid
	case ActionRefund:
		o.paymentStatus = PaymentStatusRefunded
	}

	change := StatusChange{
		OrderID:        o.id,
		PreviousStatus: previous,
		NewStatus:      next,
		ActorRole:      actor.Role(),
		ActorID:        actor.ID(),
		Notes:          notes,
		Timestamp:      now,
	}
	o.history = append(o.history, change)
	o.updatedAt = now

	return change, nil
}

// checkOwnership verifies the actor acts on an order it owns.
// Claim is exempt: any agent may claim an unassigned order.
func (o *Order) checkOwnership(actor Actor, action Action) error {
	switch actor.Role() {
	case RoleSystem, RoleAdmin:
		return nil
	case RoleClient:
		if !actor.ID().IsEqual(o.clientID) {
			return errs.NewUnauthorizedErrorWithCause("actor",
				fmt.Errorf("client %s does not own order %s", actor.ID(), o.orderNumber))
		}
	case RoleBusiness:
		if !actor.ID().IsEqual(o.businessID) {
			return errs.NewUnauthorizedErrorWithCause("actor",
				fmt.Errorf("business %s does not own order %s", actor.ID(), o.orderNumber))
		}
	case RoleAgent:
		if action == ActionClaim {
			return nil
		}
		if o.assignedAgentID == nil || !actor.ID().IsEqual(*o.assignedAgentID) {
			return errs.NewUnauthorizedErrorWithCause("actor",
				fmt.Errorf("agent %s is not assigned to order %s", actor.ID(), o.orderNumber))
		}
	}
	return nil
}
