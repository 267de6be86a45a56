package hold

import (
	"fmt"
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"
)

// ErrHoldIsNotConstructed indicates an OrderHold that was not created through
// NewOrderHold or RestoreOrderHold.
var ErrHoldIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderHold must be created via NewOrderHold or RestoreOrderHold")

// Status is the settlement state of a hold.
type Status int

const (
	// StatusUnknown represents an invalid or undefined hold status.
	StatusUnknown Status = iota

	// StatusActive means the funds are withheld on the agent's account.
	StatusActive

	// StatusReleased means the withheld funds were returned to the agent.
	StatusReleased

	// StatusCaptured means the withheld funds were settled to the platform.
	StatusCaptured
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "unknown",
		StatusActive:   "active",
		StatusReleased: "released",
		StatusCaptured: "captured",
	}
}

// Validate checks that the Status is one of the defined settlement states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("hold status is invalid",
			fmt.Errorf("%d is not a valid hold status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("hold status is invalid",
			fmt.Errorf("%d is not a valid hold status", s))
	}
	return nil
}

// String returns the snake_case status name.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a hold status name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("hold status is invalid",
		fmt.Errorf("%q is not a valid hold status name", s))
}

// OrderHold is the entity tracking funds withheld on an agent's account while
// the agent carries an order. It is created when a claim commits and settled
// exactly once: released back to the agent or captured by the platform.
//
// At most one active hold exists per order; the database enforces this with a
// partial unique index, the aggregate enforces the single-settlement rule.
type OrderHold struct {
	id      kernel.UUID
	orderID kernel.UUID
	agentID kernel.UUID

	holdAmount   kernel.Money
	chargeAmount kernel.Money
	totalAmount  kernel.Money

	status        Status
	createdAt     time.Time
	settledAt     *time.Time
	isConstructed bool
}

// NewOrderHold creates an active hold for an order claimed by an agent.
// The amounts come from the hold calculator and must share one currency;
// totalAmount must equal holdAmount + chargeAmount.
func NewOrderHold(
	id kernel.UUID,
	orderID kernel.UUID,
	agentID kernel.UUID,
	holdAmount kernel.Money,
	chargeAmount kernel.Money,
	totalAmount kernel.Money,
	now time.Time,
) (*OrderHold, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := agentID.Validate(); err != nil {
		return nil, err
	}
	if err := holdAmount.Validate(); err != nil {
		return nil, err
	}
	if holdAmount.IsNegative() || chargeAmount.IsNegative() {
		return nil, errs.NewValueIsInvalidError("hold amounts must not be negative")
	}

	sum, err := holdAmount.Add(chargeAmount)
	if err != nil {
		return nil, err
	}
	if !sum.IsEqual(totalAmount) {
		return nil, errs.NewValueIsInvalidErrorWithCause("hold amounts are inconsistent",
			fmt.Errorf("total %s does not equal hold %s + charge %s",
				totalAmount, holdAmount, chargeAmount))
	}

	return &OrderHold{
		id:            id,
		orderID:       orderID,
		agentID:       agentID,
		holdAmount:    holdAmount,
		chargeAmount:  chargeAmount,
		totalAmount:   totalAmount,
		status:        StatusActive,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrderHold reconstructs an OrderHold from persistence.
func RestoreOrderHold(
	id kernel.UUID,
	orderID kernel.UUID,
	agentID kernel.UUID,
	holdAmount kernel.Money,
	chargeAmount kernel.Money,
	totalAmount kernel.Money,
	status Status,
	createdAt time.Time,
	settledAt *time.Time,
) (*OrderHold, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := agentID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &OrderHold{
		id:            id,
		orderID:       orderID,
		agentID:       agentID,
		holdAmount:    holdAmount,
		chargeAmount:  chargeAmount,
		totalAmount:   totalAmount,
		status:        status,
		createdAt:     createdAt,
		settledAt:     settledAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the OrderHold instance was properly constructed.
func (h *OrderHold) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHoldIsNotConstructed
	}
	return nil
}

// ID returns the hold's unique identifier.
func (h *OrderHold) ID() kernel.UUID {
	return h.id
}

// OrderID returns the identifier of the held order.
func (h *OrderHold) OrderID() kernel.UUID {
	return h.orderID
}

// AgentID returns the identifier of the agent whose funds are withheld.
func (h *OrderHold) AgentID() kernel.UUID {
	return h.agentID
}

// HoldAmount returns the withheld principal.
func (h *OrderHold) HoldAmount() kernel.Money {
	return h.holdAmount
}

// ChargeAmount returns the platform charge on the hold.
func (h *OrderHold) ChargeAmount() kernel.Money {
	return h.chargeAmount
}

// TotalAmount returns holdAmount + chargeAmount, the full withheld sum.
func (h *OrderHold) TotalAmount() kernel.Money {
	return h.totalAmount
}

// Status returns the settlement status.
func (h *OrderHold) Status() Status {
	return h.status
}

// CreatedAt returns the creation timestamp.
func (h *OrderHold) CreatedAt() time.Time {
	return h.createdAt
}

// SettledAt returns the release or capture timestamp, nil while active.
func (h *OrderHold) SettledAt() *time.Time {
	return h.settledAt
}

// IsActive reports whether the hold still withholds funds.
func (h *OrderHold) IsActive() bool {
	return h.status == StatusActive
}

// Release settles the hold by returning the funds to the agent.
// Only an active hold can be released.
func (h *OrderHold) Release(now time.Time) error {
	return h.settle(StatusReleased, now)
}

// Capture settles the hold by moving the funds to the platform.
// Only an active hold can be captured.
func (h *OrderHold) Capture(now time.Time) error {
	return h.settle(StatusCaptured, now)
}

func (h *OrderHold) settle(to Status, now time.Time) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if h.status != StatusActive {
		return errs.NewConflictErrorWithCause("hold", h.id.String(),
			fmt.Errorf("hold is already %s", h.status))
	}
	h.status = to
	h.settledAt = &now
	return nil
}
