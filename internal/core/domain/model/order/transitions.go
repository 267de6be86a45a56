package order

// transitionKey addresses one edge of the status graph.
type transitionKey struct {
	status Status
	action Action
}

// transitionTable returns the complete (status, action) -> next status map.
// Every edge the system can take is listed here; there is no other way to
// move an order between statuses.
func transitionTable() map[transitionKey]Status {
	table := map[transitionKey]Status{
		{StatusPending, ActionConfirm}:                         StatusConfirmed,
		{StatusConfirmed, ActionStartPreparing}:                StatusPreparing,
		{StatusPreparing, ActionCompletePreparation}:           StatusCompletePreparation,
		{StatusCompletePreparation, ActionMarkReadyForPickup}:  StatusReadyForPickup,
		{StatusReadyForPickup, ActionClaim}:                    StatusAssignedToAgent,
		{StatusAssignedToAgent, ActionPickUp}:                  StatusPickedUp,
		{StatusAssignedToAgent, ActionDrop}:                    StatusReadyForPickup,
		{StatusPickedUp, ActionStartTransit}:                   StatusInTransit,
		{StatusPickedUp, ActionOutForDelivery}:                 StatusOutForDelivery,
		{StatusInTransit, ActionOutForDelivery}:                StatusOutForDelivery,
		{StatusOutForDelivery, ActionDeliver}:                  StatusDelivered,
		{StatusOutForDelivery, ActionFail}:                     StatusFailed,
		{StatusDelivered, ActionComplete}:                      StatusComplete,
	}

	for _, s := range cancellableStatuses() {
		table[transitionKey{s, ActionCancel}] = StatusCancelled
	}
	for _, s := range refundableStatuses() {
		table[transitionKey{s, ActionRefund}] = StatusRefunded
	}

	return table
}

// cancellableStatuses lists every status a cancel edge leaves from.
// Role tables below restrict which party may cancel from which status.
func cancellableStatuses() []Status {
	return []Status{
		StatusPendingPayment,
		StatusPending,
		StatusConfirmed,
		StatusPreparing,
		StatusReadyForPickup,
	}
}

// refundableStatuses lists every status a refund edge leaves from: all
// statuses except complete and refunded. The payment-status guard in
// Order.Apply further restricts refunds to captured payments.
func refundableStatuses() []Status {
	statuses := make([]Status, 0, len(getStatusStrings()))
	for s := range getStatusStrings() {
		if s == StatusUnknown || s == StatusComplete || s == StatusRefunded {
			continue
		}
		statuses = append(statuses, s)
	}
	return statuses
}

// roleActions returns the (role, status) -> permitted actions map.
// An action listed here must also exist in transitionTable; the tables are
// cross-checked by the package tests.
func roleActions() map[Role]map[Status][]Action {
	business := map[Status][]Action{
		StatusPending:   {ActionConfirm, ActionCancel},
		StatusConfirmed: {ActionStartPreparing, ActionCancel},
		StatusPreparing: {ActionCompletePreparation, ActionCancel},
		StatusDelivered: {ActionComplete},
	}
	// Businesses may refund from any refundable status.
	for _, s := range refundableStatuses() {
		business[s] = append(business[s], ActionRefund)
	}

	client := map[Status][]Action{
		StatusPendingPayment: {ActionCancel},
		StatusPending:        {ActionCancel},
		StatusConfirmed:      {ActionCancel},
		StatusPreparing:      {ActionCancel},
		StatusReadyForPickup: {ActionCancel},
		StatusDelivered:      {ActionComplete},
	}

	agent := map[Status][]Action{
		StatusReadyForPickup:  {ActionClaim},
		StatusAssignedToAgent: {ActionPickUp, ActionDrop},
		StatusPickedUp:        {ActionStartTransit, ActionOutForDelivery},
		StatusInTransit:       {ActionOutForDelivery},
		StatusOutForDelivery:  {ActionDeliver, ActionFail},
	}

	system := map[Status][]Action{
		StatusCompletePreparation: {ActionMarkReadyForPickup},
	}

	// Admins may take any action valid for some role at the status;
	// ownership is bypassed, status validity is not.
	admin := map[Status][]Action{}
	for _, table := range []map[Status][]Action{business, client, agent, system} {
		for s, actions := range table {
			for _, a := range actions {
				if !containsAction(admin[s], a) {
					admin[s] = append(admin[s], a)
				}
			}
		}
	}

	return map[Role]map[Status][]Action{
		RoleBusiness: business,
		RoleClient:   client,
		RoleAgent:    agent,
		RoleSystem:   system,
		RoleAdmin:    admin,
	}
}

func containsAction(actions []Action, a Action) bool {
	for _, candidate := range actions {
		if candidate == a {
			return true
		}
	}
	return false
}

// NextStatus resolves the status reached by taking action from status.
// The boolean reports whether the edge exists.
func NextStatus(status Status, action Action) (Status, bool) {
	next, ok := transitionTable()[transitionKey{status, action}]
	return next, ok
}

// AllowedActions returns the actions the given role may request for an order
// in the given status. The result is empty when the role has no actions there.
func AllowedActions(role Role, status Status) []Action {
	return roleActions()[role][status]
}

// RoleMayApply reports whether the role is permitted to request the action
// for an order in the given status. Ownership is checked separately by
// Order.Apply.
func RoleMayApply(role Role, status Status, action Action) bool {
	return containsAction(AllowedActions(role, status), action)
}
