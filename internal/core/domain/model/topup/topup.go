package topup

import (
	"fmt"
	"strings"
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"
)

// ErrAttemptIsNotConstructed indicates an Attempt that was not created through
// NewAttempt or RestoreAttempt.
var ErrAttemptIsNotConstructed = errs.NewValueIsRequiredError(
	"Attempt must be created via NewAttempt or RestoreAttempt")

// Status is the lifecycle state of a top-up attempt.
type Status int

const (
	// StatusUnknown represents an invalid or undefined attempt status.
	StatusUnknown Status = iota

	// StatusPending means the request-to-pay was initiated and awaits the payer.
	StatusPending

	// StatusCompleted means the payment arrived and the claim was committed.
	StatusCompleted

	// StatusCompensated means the payment arrived but the order was claimed by
	// another agent meanwhile; the collected amount was credited back.
	StatusCompensated

	// StatusFailed means the payer rejected or the collection expired.
	StatusFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "unknown",
		StatusPending:     "pending",
		StatusCompleted:   "completed",
		StatusCompensated: "compensated",
		StatusFailed:      "failed",
	}
}

// Validate checks that the Status is one of the defined attempt states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("topup status is invalid",
			fmt.Errorf("%d is not a valid topup status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("topup status is invalid",
			fmt.Errorf("%d is not a valid topup status", s))
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

// StatusFromString parses a topup status name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("topup status is invalid",
		fmt.Errorf("%q is not a valid topup status name", s))
}

// CorrelationIDPrefix is prepended to every collection correlation id so
// provider callbacks can be routed to the top-up flow.
const CorrelationIDPrefix = "topup_"

// NewCorrelationID derives the external correlation id for an attempt.
func NewCorrelationID(attemptID kernel.UUID) string {
	return CorrelationIDPrefix + attemptID.String()
}

// Attempt is the record of one request-to-pay initiated because an agent's
// available balance did not cover the hold for an order the agent wants.
//
// The attempt keys the provider callback by correlation id and remembers the
// order and agent so the claim can be retried once the money arrives. The
// order is NOT reserved while the attempt is pending: another agent may claim
// it, in which case the completed attempt is compensated.
type Attempt struct {
	id            kernel.UUID
	correlationID string
	orderID       kernel.UUID
	agentID       kernel.UUID
	phone         string
	amount        kernel.Money

	status        Status
	createdAt     time.Time
	updatedAt     time.Time
	isConstructed bool
}

// NewAttempt creates a pending top-up attempt. The amount is the shortfall to
// collect; the phone is the payer's MSISDN.
func NewAttempt(
	id kernel.UUID,
	orderID kernel.UUID,
	agentID kernel.UUID,
	phone string,
	amount kernel.Money,
	now time.Time,
) (*Attempt, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := agentID.Validate(); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	if err := amount.Validate(); err != nil {
		return nil, err
	}
	if amount.IsZero() || amount.IsNegative() {
		return nil, errs.NewValueIsInvalidError("topup amount must be positive")
	}

	return &Attempt{
		id:            id,
		correlationID: NewCorrelationID(id),
		orderID:       orderID,
		agentID:       agentID,
		phone:         phone,
		amount:        amount,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreAttempt reconstructs an Attempt from persistence.
func RestoreAttempt(
	id kernel.UUID,
	correlationID string,
	orderID kernel.UUID,
	agentID kernel.UUID,
	phone string,
	amount kernel.Money,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Attempt, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if correlationID == "" {
		return nil, errs.NewValueIsRequiredError("correlationID")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Attempt{
		id:            id,
		correlationID: correlationID,
		orderID:       orderID,
		agentID:       agentID,
		phone:         phone,
		amount:        amount,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func validatePhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	digits := strings.TrimPrefix(phone, "+")
	if len(digits) < 8 || len(digits) > 15 {
		return errs.NewValueIsInvalidErrorWithCause("phone is invalid",
			fmt.Errorf("%q is not a valid MSISDN", phone))
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("phone is invalid",
				fmt.Errorf("%q is not a valid MSISDN", phone))
		}
	}
	return nil
}

// Validate ensures the Attempt instance was properly constructed.
func (a *Attempt) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAttemptIsNotConstructed
	}
	return nil
}

// ID returns the attempt's unique identifier.
func (a *Attempt) ID() kernel.UUID {
	return a.id
}

// CorrelationID returns the external collection correlation id.
func (a *Attempt) CorrelationID() string {
	return a.correlationID
}

// OrderID returns the order the agent wants to claim.
func (a *Attempt) OrderID() kernel.UUID {
	return a.orderID
}

// AgentID returns the agent the collection tops up.
func (a *Attempt) AgentID() kernel.UUID {
	return a.agentID
}

// Phone returns the payer's MSISDN.
func (a *Attempt) Phone() string {
	return a.phone
}

// Amount returns the amount being collected.
func (a *Attempt) Amount() kernel.Money {
	return a.amount
}

// Status returns the attempt's lifecycle state.
func (a *Attempt) Status() Status {
	return a.status
}

// CreatedAt returns the creation timestamp.
func (a *Attempt) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (a *Attempt) UpdatedAt() time.Time {
	return a.updatedAt
}

// IsPending reports whether the attempt still awaits the payer.
func (a *Attempt) IsPending() bool {
	return a.status == StatusPending
}

// Complete marks a pending attempt as collected and claimed.
func (a *Attempt) Complete(now time.Time) error {
	return a.resolve(StatusCompleted, now)
}

// Compensate marks a pending attempt as collected but not claimed: the order
// went to another agent and the money was credited back.
func (a *Attempt) Compensate(now time.Time) error {
	return a.resolve(StatusCompensated, now)
}

// Fail marks a pending attempt as rejected or expired.
func (a *Attempt) Fail(now time.Time) error {
	return a.resolve(StatusFailed, now)
}

func (a *Attempt) resolve(to Status, now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.status != StatusPending {
		return errs.NewConflictErrorWithCause("topup attempt", a.id.String(),
			fmt.Errorf("attempt is already %s", a.status))
	}
	a.status = to
	a.updatedAt = now
	return nil
}
