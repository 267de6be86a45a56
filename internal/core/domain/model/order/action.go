package order

import (
	"fmt"

	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"
)

// Action identifies a requested transition on an order.
// Which actions are available depends on the actor's role and the order's
// current status; see the tables in transitions.go.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionConfirm accepts a pending order (business).
	ActionConfirm

	// ActionStartPreparing begins preparation of a confirmed order (business).
	ActionStartPreparing

	// ActionCompletePreparation finishes preparation (business).
	ActionCompletePreparation

	// ActionMarkReadyForPickup publishes a prepared order to agents (system).
	ActionMarkReadyForPickup

	// ActionClaim takes exclusive delivery responsibility for an order (agent).
	ActionClaim

	// ActionPickUp collects the claimed order from the business (agent).
	ActionPickUp

	// ActionDrop releases a claimed order back to the pickup pool (agent).
	ActionDrop

	// ActionStartTransit begins the trip to the delivery address (agent).
	ActionStartTransit

	// ActionOutForDelivery begins the final delivery leg (agent).
	ActionOutForDelivery

	// ActionDeliver records a successful handover (agent).
	ActionDeliver

	// ActionFail records a failed delivery attempt (agent).
	ActionFail

	// ActionComplete closes a delivered order and releases payment (client or business).
	ActionComplete

	// ActionCancel cancels an order before delivery (client or business).
	ActionCancel

	// ActionRefund refunds an order whose payment was captured (business).
	ActionRefund
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:             "unknown",
		ActionConfirm:             "confirm",
		ActionStartPreparing:      "start_preparing",
		ActionCompletePreparation: "complete_preparation",
		ActionMarkReadyForPickup:  "mark_ready_for_pickup",
		ActionClaim:               "claim",
		ActionPickUp:              "pick_up",
		ActionDrop:                "drop",
		ActionStartTransit:        "start_transit",
		ActionOutForDelivery:      "out_for_delivery",
		ActionDeliver:             "deliver",
		ActionFail:                "fail",
		ActionComplete:            "complete",
		ActionCancel:              "cancel",
		ActionRefund:              "refund",
	}
}

// Validate checks that the Action is one of the defined actions.
func (a Action) Validate() error {
	if a == ActionUnknown {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid",
			fmt.Errorf("%d is not a valid action", a))
	}
	if _, ok := getActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid",
			fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// String returns the snake_case action name.
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// ActionFromString parses a snake_case action name.
func ActionFromString(s string) (Action, error) {
	for action, str := range getActionStrings() {
		if str == s && action != ActionUnknown {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action is invalid",
		fmt.Errorf("%q is not a valid action name", s))
}
