// Package order provides domain entities and business logic for delivery order
// lifecycle management. It implements the Order aggregate root with a table
// driven state machine and role-based transition permissions.
//
// The package includes:
//   - Order: The aggregate root managing order identity, money fields,
//     agent assignment, payment status, and the append-only status history
//   - Status / PaymentStatus: Validated lifecycle enumerations
//   - Action / Role / Actor: Transition requests and the parties making them
//   - Transition tables: the (status, action) -> next status map and the
//     (role, status) -> permitted actions map
//
// Key business rules:
//   - Status only changes along edges of the transition table
//   - Each role only takes the actions listed for it at the current status
//   - Clients, businesses, and agents act only on orders they own; system
//     and admin actors bypass ownership but not status validity
//   - A claim is exclusive: at most one agent holds an order at a time
//   - Refunds require a captured (non-pending) payment
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
