package order

import (
	"fmt"

	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// It implements a state machine whose transitions are defined by the
// transition table in transitions.go; aggregates never jump between
// statuses except along a defined edge.
//
// Lifecycle overview:
//
//	pending_payment / pending ──> confirmed ──> preparing ──> complete_preparation
//	     │                            │             │                  │
//	     └──────── cancelled <────────┴─────────────┘          ready_for_pickup
//	                                                                   │ (claim)
//	                assigned_to_agent <────────────────────────────────┘
//	                    │       └──(drop)──> ready_for_pickup
//	                picked_up ──> in_transit ──> out_for_delivery ──> delivered ──> complete
//	                    └──────────────────────────────┘  └──> failed
//
// complete, cancelled, failed and refunded are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPendingPayment marks an order created but not yet paid for.
	StatusPendingPayment

	// StatusPending marks a paid order awaiting business confirmation.
	StatusPending

	// StatusConfirmed marks an order accepted by the business.
	StatusConfirmed

	// StatusPreparing marks an order being prepared by the business.
	StatusPreparing

	// StatusCompletePreparation marks preparation as finished; the system
	// moves the order to ready_for_pickup from here.
	StatusCompletePreparation

	// StatusReadyForPickup marks an order claimable by any verified agent.
	StatusReadyForPickup

	// StatusAssignedToAgent marks an order exclusively claimed by one agent.
	StatusAssignedToAgent

	// StatusPickedUp marks an order collected from the business location.
	StatusPickedUp

	// StatusInTransit marks an order on its way to the delivery address.
	StatusInTransit

	// StatusOutForDelivery marks the final delivery leg.
	StatusOutForDelivery

	// StatusDelivered marks a successful handover awaiting completion.
	StatusDelivered

	// StatusComplete is the terminal success state; payment is released.
	StatusComplete

	// StatusCancelled is the terminal state for cancelled orders.
	StatusCancelled

	// StatusFailed is the terminal state for failed deliveries.
	StatusFailed

	// StatusRefunded is the terminal state for refunded orders.
	StatusRefunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:             "unknown",
		StatusPendingPayment:      "pending_payment",
		StatusPending:             "pending",
		StatusConfirmed:           "confirmed",
		StatusPreparing:           "preparing",
		StatusCompletePreparation: "complete_preparation",
		StatusReadyForPickup:      "ready_for_pickup",
		StatusAssignedToAgent:     "assigned_to_agent",
		StatusPickedUp:            "picked_up",
		StatusInTransit:           "in_transit",
		StatusOutForDelivery:      "out_for_delivery",
		StatusDelivered:           "delivered",
		StatusComplete:            "complete",
		StatusCancelled:           "cancelled",
		StatusFailed:              "failed",
		StatusRefunded:            "refunded",
	}
}

// Validate checks that the Status is one of the defined lifecycle states.
// StatusUnknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name used on the wire and in persistence.
// Implements fmt.Stringer; safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a snake_case status name.
// Returns an error for unknown names, including "unknown" itself.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status name", s))
}

// IsTerminal reports whether s ends the delivery lifecycle.
// A refund edge may still exist from some terminal statuses.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusComplete, StatusCancelled, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

// RequiresAgent reports whether an order in this status must have an
// assigned agent. Terminal statuses may retain the agent for audit but
// no longer imply an active assignment.
func (s Status) RequiresAgent() bool {
	switch s {
	case StatusAssignedToAgent, StatusPickedUp, StatusInTransit,
		StatusOutForDelivery, StatusDelivered, StatusComplete:
		return true
	default:
		return false
	}
}

// ValidateCanHaveAgent validates the consistency between an order's status
// and its agent assignment.
//
// Rules:
//   - Statuses from assigned_to_agent through complete require an agent.
//   - Statuses before assignment must not have an agent.
//   - cancelled, failed and refunded may keep the agent for audit.
func (s Status) ValidateCanHaveAgent(hasAgent bool) error {
	if s.RequiresAgent() && !hasAgent {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s requires an assigned agent", s))
	}

	if hasAgent && !s.RequiresAgent() && !s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to have an agent", s))
	}

	return nil
}

// PaymentStatus tracks money movement for an order independently from the
// delivery lifecycle.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusPending means funds have not been captured yet.
	PaymentStatusPending

	// PaymentStatusPaid means the order payment has been released.
	PaymentStatusPaid

	// PaymentStatusRefunded means the payment was returned to the client.
	PaymentStatusRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown:  "unknown",
		PaymentStatusPending:  "pending",
		PaymentStatusPaid:     "paid",
		PaymentStatusRefunded: "refunded",
	}
}

// Validate checks that the PaymentStatus is one of the defined states.
func (p PaymentStatus) Validate() error {
	if p == PaymentStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// String returns the snake_case payment status name.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatusFromString parses a payment status name.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != PaymentStatusUnknown {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
		fmt.Errorf("%q is not a valid payment status name", s))
}
