package actor

import (
	"fmt"

	"courierhub/internal/pkg/errs"
)

// Role represents the capability class of an acting user.
// The authentication collaborator resolves credentials to a Role per request;
// this package only models the resolved value.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleAdmin has full control over deliveries and billing.
	RoleAdmin

	// RoleStaff operates deliveries on behalf of the business: creates,
	// assigns, confirms, rejects, and corrects fees.
	RoleStaff

	// RoleRider executes deliveries. Riders may create self-assigned
	// deliveries pending confirmation and advance deliveries assigned to them.
	RoleRider
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "UNKNOWN",
		RoleAdmin:   "ADMIN",
		RoleStaff:   "STAFF",
		RoleRider:   "RIDER",
	}
}

// RoleFromString parses a role from its wire name ("ADMIN", "STAFF", "RIDER").
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// String returns the wire name of the role, or "UNKNOWN" for invalid values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the Role is one of the defined values.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleStaff, RoleRider:
		return nil
	case RoleUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
}

// IsOperator reports whether the role may manage deliveries for the business.
func (r Role) IsOperator() bool {
	return r == RoleAdmin || r == RoleStaff
}
