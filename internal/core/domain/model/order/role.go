package order

import (
	"fmt"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"
)

// Role identifies the kind of party requesting an order transition.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleClient is the ordering customer.
	RoleClient

	// RoleBusiness is the fulfilling business.
	RoleBusiness

	// RoleAgent is a delivery agent.
	RoleAgent

	// RoleSystem is the platform itself (scheduled and event-driven transitions).
	RoleSystem

	// RoleAdmin bypasses ownership checks but not status validity.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleClient:   "client",
		RoleBusiness: "business",
		RoleAgent:    "agent",
		RoleSystem:   "system",
		RoleAdmin:    "admin",
	}
}

// Validate checks that the Role is one of the defined roles.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase role name.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// RoleFromString parses a role name.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role name", s))
}

// Actor is the party requesting a transition: a role plus the identifier of
// the client, business or agent acting in that role. For RoleSystem and
// RoleAdmin the ID identifies the principal for the audit trail only.
type Actor struct {
	role Role
	id   kernel.UUID
}

// ErrActorIsNotConstructed is returned when an Actor was not created through
// the NewActor factory function.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"Actor must be created via NewActor")

// NewActor creates a validated Actor.
func NewActor(role Role, id kernel.UUID) (Actor, error) {
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{role: role, id: id}, nil
}

// Validate ensures the Actor was properly constructed.
func (a Actor) Validate() error {
	if a.role == RoleUnknown {
		return ErrActorIsNotConstructed
	}
	return a.id.Validate()
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// ID returns the identifier of the acting party.
func (a Actor) ID() kernel.UUID {
	return a.id
}
