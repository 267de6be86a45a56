// Package hold provides the OrderHold entity tracking funds withheld on an
// agent's account for the duration of a delivery.
//
// A hold is created when an agent's claim commits, carries the withheld
// principal plus the platform charge, and is settled exactly once: released
// back to the agent (delivery completed, failed, or order cancelled) or
// captured by the platform (order closed as complete). At most one active
// hold exists per order.
package hold
